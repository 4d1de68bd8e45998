package model

import "time"

// Command - закрытое множество действий над заказом. Вместо строкового
// имени действия с произвольным payload каждое действие - отдельный тип
// со своими полями; незнакомое действие непредставимо.
type Command interface {
	// Order возвращает идентификатор заказа, к которому относится действие
	Order() string

	command()
}

// Pick - исполнитель сам забирает доступный заказ
type Pick struct {
	OrderID       string `json:"order_id"`
	PerformerID   string `json:"performer_id"`
	PerformerName string `json:"performer_name"`
}

// Assign - менеджер назначает заказ исполнителю
type Assign struct {
	OrderID              string     `json:"order_id"`
	PerformerID          string     `json:"performer_id"`
	PerformerName        string     `json:"performer_name"`
	Priority             string     `json:"priority,omitempty"`
	Deadline             *time.Time `json:"deadline,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	ConfirmationRequired bool       `json:"confirmation_required,omitempty"`
}

// MakeAvailable - возврат заказа в общий пул
type MakeAvailable struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason,omitempty"`
	Actor   string `json:"actor,omitempty"`
}

// StartWork - исполнитель начинает работу
type StartWork struct {
	OrderID   string     `json:"order_id"`
	ETA       *time.Time `json:"eta,omitempty"`
	Questions []string   `json:"questions,omitempty"`
}

// Submit - сдача работы на проверку
type Submit struct {
	OrderID string    `json:"order_id"`
	Files   []FileRef `json:"files,omitempty"`
	Notes   string    `json:"notes,omitempty"`
}

// Approve - принятие работы
type Approve struct {
	OrderID  string `json:"order_id"`
	Reviewer string `json:"reviewer,omitempty"`
}

// Reject - отклонение работы со штрафом
type Reject struct {
	OrderID  string `json:"order_id"`
	Reviewer string `json:"reviewer,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// RequestRevision - возврат работы на доработку
type RequestRevision struct {
	OrderID  string `json:"order_id"`
	Reviewer string `json:"reviewer,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Resubmit - повторная сдача после доработки
type Resubmit struct {
	OrderID string    `json:"order_id"`
	Files   []FileRef `json:"files,omitempty"`
}

// Reassign - снятие исполнителя с заказа; при снятии за просрочку
// начисляется штраф
type Reassign struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason,omitempty"`
	Actor   string `json:"actor,omitempty"`
	Late    bool   `json:"late,omitempty"`
}

// PutOnHold - приостановка заказа
type PutOnHold struct {
	OrderID string `json:"order_id"`
	Actor   string `json:"actor,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// MarkUrgent - пометка срочности, статус не меняется
type MarkUrgent struct {
	OrderID string `json:"order_id"`
	Actor   string `json:"actor,omitempty"`
}

// ExtendDeadline - перенос дедлайна с сохранением исходного
type ExtendDeadline struct {
	OrderID     string    `json:"order_id"`
	NewDeadline time.Time `json:"new_deadline"`
	Actor       string    `json:"actor,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// Cancel - отмена заказа
type Cancel struct {
	OrderID string `json:"order_id"`
}

// Complete - принудительное завершение заказа
type Complete struct {
	OrderID string `json:"order_id"`
}

func (c Pick) Order() string            { return c.OrderID }
func (c Assign) Order() string          { return c.OrderID }
func (c MakeAvailable) Order() string   { return c.OrderID }
func (c StartWork) Order() string       { return c.OrderID }
func (c Submit) Order() string          { return c.OrderID }
func (c Approve) Order() string         { return c.OrderID }
func (c Reject) Order() string          { return c.OrderID }
func (c RequestRevision) Order() string { return c.OrderID }
func (c Resubmit) Order() string        { return c.OrderID }
func (c Reassign) Order() string        { return c.OrderID }
func (c PutOnHold) Order() string       { return c.OrderID }
func (c MarkUrgent) Order() string      { return c.OrderID }
func (c ExtendDeadline) Order() string  { return c.OrderID }
func (c Cancel) Order() string          { return c.OrderID }
func (c Complete) Order() string        { return c.OrderID }

func (Pick) command()            {}
func (Assign) command()          {}
func (MakeAvailable) command()   {}
func (StartWork) command()       {}
func (Submit) command()          {}
func (Approve) command()         {}
func (Reject) command()          {}
func (RequestRevision) command() {}
func (Resubmit) command()        {}
func (Reassign) command()        {}
func (PutOnHold) command()       {}
func (MarkUrgent) command()      {}
func (ExtendDeadline) command()  {}
func (Cancel) command()          {}
func (Complete) command()        {}
