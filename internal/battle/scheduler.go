package battle

import "tactics-server/internal/domain"

// ProcessTick выполняет один дискретный шаг CT-планировщика.
//
// Порядок на вызов:
//  1. Если активный юнит уже есть — ничего не делаем (фасад обязан
//     закрыть активацию до следующего тика).
//  2. Если кто-то уже накопил CT >= 100 — активируем его, не трогая
//     TickCount и ничей CT.
//  3. Иначе каждый живой юнит получает +SPD к CT. Если после накопления
//     кто-то перевалил порог — активируем его этим же вызовом (TickCount
//     не растёт); иначе TickCount++.
//
// При равном CT кандидаты упорядочиваются по возрастанию ID — детерминизм
// нужен тестам и сетевому зеркалу.
//
// Возвращает юнита, активированного этим вызовом, либо nil.
// Реальная частота вызовов (таймер рендера, серверный тикер) — забота
// внешнего драйвера, ядро гарантирует только семантику одного вызова.
func (s *State) ProcessTick() *domain.Unit {
	if s.ActiveUnitID != "" {
		return nil
	}

	if ready := s.pickReady(); ready != nil {
		s.ActiveUnitID = ready.ID
		return ready
	}

	for _, u := range s.Units {
		if u.Alive() {
			u.Stats.CT += u.Stats.SPD
		}
	}

	if ready := s.pickReady(); ready != nil {
		s.ActiveUnitID = ready.ID
		return ready
	}

	s.TickCount++
	return nil
}

// pickReady выбирает юнита с CT >= 100: строго наибольший CT,
// при равенстве — наименьший ID.
func (s *State) pickReady() *domain.Unit {
	var best *domain.Unit
	for _, u := range s.Units {
		if !u.Alive() || u.Stats.CT < CTThreshold {
			continue
		}
		if best == nil ||
			u.Stats.CT > best.Stats.CT ||
			(u.Stats.CT == best.Stats.CT && u.ID < best.ID) {
			best = u
		}
	}
	return best
}

// CompleteActivation закрывает активацию юнита: CT списывается на величину
// порога (переполнение сохраняется), активный юнит сбрасывается,
// TurnCount растёт. Вызывается фасадом, когда юнит достиг TurnEnded.
func (s *State) CompleteActivation(u *domain.Unit) {
	u.Stats.CT -= CTThreshold
	if u.Stats.CT < 0 {
		u.Stats.CT = 0
	}
	s.ActiveUnitID = ""
	s.TurnCount++
}
