package lifecycle

import "github.com/ibeloyar/taskmarket/internal/model"

// Производные представления пересчитываются по требованию из
// авторитетной коллекции; после колбэка подписки они уже видят новое
// состояние.

func (m *Machine) Orders() []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Order(nil), m.orders...)
}

func (m *Machine) Get(id string) (model.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

func (m *Machine) ByStatus(status model.OrderStatus) []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]model.Order, 0)
	for _, o := range m.orders {
		if o.Status == status {
			result = append(result, o)
		}
	}
	return result
}

func (m *Machine) ByPerformer(performerID string) []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]model.Order, 0)
	for _, o := range m.orders {
		if o.PerformerID == performerID {
			result = append(result, o)
		}
	}
	return result
}

// Counts - количество заказов по каждому статусу
func (m *Machine) Counts() map[model.OrderStatus]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[model.OrderStatus]int)
	for _, o := range m.orders {
		counts[o.Status]++
	}
	return counts
}

// Earnings - заработок исполнителя по завершённым заказам за вычетом
// накопленных штрафов
func (m *Machine) Earnings(performerID string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total float64
	for _, o := range m.orders {
		if o.Status == model.OrderStatusCompleted && o.PerformerID == performerID {
			total += o.Total() - o.FineAmount
		}
	}
	return total
}
