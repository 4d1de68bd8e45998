package lifecycle

import "time"

// тестовые ручки: фиксированные часы и синхронные коллабораторы

func (m *Machine) SetClock(now func() time.Time) { m.now = now }

func (m *Machine) RunEffectsInline() { m.async = func(f func()) { f() } }
