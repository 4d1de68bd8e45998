package model

import "time"

type OrderStatus string

const (
	OrderStatusAvailable              OrderStatus = "AVAILABLE"
	OrderStatusAssigned               OrderStatus = "ASSIGNED"
	OrderStatusInProgress             OrderStatus = "IN_PROGRESS"
	OrderStatusSubmitted              OrderStatus = "SUBMITTED"
	OrderStatusResubmitted            OrderStatus = "RESUBMITTED"
	OrderStatusRevision               OrderStatus = "REVISION"
	OrderStatusCompleted              OrderStatus = "COMPLETED"
	OrderStatusRejected               OrderStatus = "REJECTED"
	OrderStatusCancelled              OrderStatus = "CANCELLED"
	OrderStatusOnHold                 OrderStatus = "ON_HOLD"
	OrderStatusDisputed               OrderStatus = "DISPUTED"
	OrderStatusRefunded               OrderStatus = "REFUNDED"
	OrderStatusPendingApproval        OrderStatus = "PENDING_APPROVAL"
	OrderStatusApprovedPendingPayment OrderStatus = "APPROVED_PENDING_PAYMENT"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusAvailable:              {},
	OrderStatusAssigned:               {},
	OrderStatusInProgress:             {},
	OrderStatusSubmitted:              {},
	OrderStatusResubmitted:            {},
	OrderStatusRevision:               {},
	OrderStatusCompleted:              {},
	OrderStatusRejected:               {},
	OrderStatusCancelled:              {},
	OrderStatusOnHold:                 {},
	OrderStatusDisputed:               {},
	OrderStatusRefunded:               {},
	OrderStatusPendingApproval:        {},
	OrderStatusApprovedPendingPayment: {},
}

// Valid - статус входит в закрытый набор
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// PerformerOwned - статусы, в которых заказ закреплён за исполнителем
func (s OrderStatus) PerformerOwned() bool {
	switch s {
	case OrderStatusAssigned, OrderStatusInProgress, OrderStatusSubmitted,
		OrderStatusResubmitted, OrderStatusRevision:
		return true
	}
	return false
}

type FineType string

const (
	FineTypeRejection        FineType = "rejection"
	FineTypeAutoReassignment FineType = "auto-reassignment"
)

// FineRate - доля от стоимости заказа, удерживаемая как штраф
const FineRate = 0.10

type FineEntry struct {
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Type      FineType  `json:"type"`
	AppliedAt time.Time `json:"applied_at"`
}

type FileRef struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ClientMessage struct {
	From   string    `json:"from"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

type Question struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Answer     string     `json:"answer,omitempty"`
	AskedAt    time.Time  `json:"asked_at"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

// SyncState - отметка о подтверждении записи удалённым снапшотом
type SyncState string

const (
	SyncStateLocal     SyncState = "LOCAL"
	SyncStateConfirmed SyncState = "CONFIRMED"
)

type Order struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Status OrderStatus `json:"status"`

	PerformerID   string `json:"performer_id,omitempty"`
	PerformerName string `json:"performer_name,omitempty"`

	Pages    int     `json:"pages"`
	PageRate float64 `json:"page_rate"`

	FineAmount  float64     `json:"fine_amount"`
	FineHistory []FineEntry `json:"fine_history,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`

	Deadline         *time.Time `json:"deadline,omitempty"`
	OriginalDeadline *time.Time `json:"original_deadline,omitempty"`
	DeadlineActor    string     `json:"deadline_actor,omitempty"`
	DeadlineReason   string     `json:"deadline_reason,omitempty"`
	ETA              *time.Time `json:"eta,omitempty"`

	Priority             string `json:"priority,omitempty"`
	Notes                string `json:"notes,omitempty"`
	ConfirmationRequired bool   `json:"confirmation_required,omitempty"`

	Urgent   bool       `json:"urgent,omitempty"`
	UrgentAt *time.Time `json:"urgent_at,omitempty"`
	UrgentBy string     `json:"urgent_by,omitempty"`

	HoldAt     *time.Time `json:"hold_at,omitempty"`
	HoldBy     string     `json:"hold_by,omitempty"`
	HoldReason string     `json:"hold_reason,omitempty"`

	ReviewedBy      string `json:"reviewed_by,omitempty"`
	ReviewNotes     string `json:"review_notes,omitempty"`
	SubmissionNotes string `json:"submission_notes,omitempty"`

	RevisionRespondedAt *time.Time `json:"revision_responded_at,omitempty"`

	ReassignReason      string     `json:"reassign_reason,omitempty"`
	ReassignedBy        string     `json:"reassigned_by,omitempty"`
	ReassignedAt        *time.Time `json:"reassigned_at,omitempty"`
	PreviousPerformerID string     `json:"previous_performer_id,omitempty"`

	Messages  []ClientMessage `json:"messages,omitempty"`
	Files     []FileRef       `json:"files,omitempty"`
	Questions []Question      `json:"questions,omitempty"`
	Checklist map[string]bool `json:"checklist,omitempty"`

	SyncState SyncState `json:"sync_state,omitempty"`
}

// Total - стоимость заказа без учёта штрафов
func (o Order) Total() float64 {
	return float64(o.Pages) * o.PageRate
}

// Snapshot - полная копия набора коллекций, как её отдаёт удалённый ресурс
type Snapshot struct {
	Collections map[string][]Order `json:"collections"`
	ExportedAt  time.Time          `json:"exported_at"`
}

// CollectionOrders - имя единственной коллекции заказов
const CollectionOrders = "orders"
