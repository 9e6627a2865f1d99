package engine

import (
	"github.com/sirupsen/logrus"

	"tactics-server/internal/ability"
	"tactics-server/internal/battle"
	"tactics-server/internal/content"
	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"
)

// Options — параметры создания боевой сессии.
// Пустые пути означают вшитые данные по умолчанию.
type Options struct {
	AbilitiesPath string
	BattlePath    string
}

// Service — фасад боевого ядра. Единственная мутабельная сессия,
// через которую внешние слои (рендер, сеть) трогают состояние боя.
//
// Ядро однопоточное и синхронное: каждая операция выполняется до конца
// и возвращает результат до приёма следующей. Все сквозные проверки
// легальности (чей ход, что юнит ещё может в этом ходу) живут здесь.
type Service struct {
	state      *battle.State
	registry   *ability.Registry
	battlePath string
	log        *logrus.Entry
}

// NewService создает сессию и наполняет каталог способностей.
// Состояние боя пустое до вызова SetupInitialState.
func NewService(opts Options) (*Service, error) {
	defs, err := content.LoadAbilityDefinitions(opts.AbilitiesPath)
	if err != nil {
		return nil, err
	}

	reg := ability.NewRegistry()
	for _, def := range defs {
		a, err := ability.FromDefinition(def)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(a); err != nil {
			return nil, err
		}
	}

	s := &Service{
		registry:   reg,
		battlePath: opts.BattlePath,
		log:        logger.WithComponent("engine"),
	}
	s.log.WithField("abilities", reg.Len()).Info("Ability catalog loaded")
	return s, nil
}

// SetupInitialState разворачивает ростер и террейн из конфигурации.
// Вызывать ровно один раз на сессию: повторный вызов продублирует юнитов,
// дедупликации нет намеренно.
func (s *Service) SetupInitialState() error {
	cfg, err := content.LoadBattleConfig(s.battlePath)
	if err != nil {
		return err
	}

	if s.state == nil {
		m := domain.NewGridMap(cfg.Map.Width, cfg.Map.Height)
		s.state = battle.NewState(m)
	}

	for _, cell := range cfg.Map.Walls {
		s.state.Map.SetTilePassable(domain.Position{X: cell.X, Y: cell.Y}, false)
	}
	for _, cell := range cfg.Map.Heights {
		s.state.Map.SetTileHeight(domain.Position{X: cell.X, Y: cell.Y}, cell.Height)
	}

	for _, uc := range cfg.Units {
		u := domain.NewUnit(uc.Name, uc.Job, uc.Team, uc.Pos)
		u.Equipped.Weapon = uc.Weapon
		u.Equipped.Magic = append([]domain.AbilityID(nil), uc.Magic...)
		for id, count := range uc.Items {
			u.Equipped.Items = append(u.Equipped.Items, id)
			u.Inventory[id] = count
		}

		// Битая ссылка на каталог — ошибка данных, но не повод падать:
		// на применении она превратится в ability_not_found.
		for _, id := range s.equippedIDs(u) {
			if s.registry.Get(id) == nil {
				s.log.WithFields(logrus.Fields{
					"unit":    u.Name,
					"ability": id,
				}).Warn("Equipped ability missing from catalog")
			}
		}

		s.state.AddUnit(u)
		s.log.WithFields(logrus.Fields{
			"unit_id": u.ID,
			"name":    u.Name,
			"job":     u.Job,
			"team":    u.TeamID,
		}).Debug("Unit deployed")
	}

	s.log.WithFields(logrus.Fields{
		"units": len(s.state.Units),
		"map_w": cfg.Map.Width,
		"map_h": cfg.Map.Height,
	}).Info("Battle state initialized")
	return nil
}

func (s *Service) equippedIDs(u *domain.Unit) []domain.AbilityID {
	ids := make([]domain.AbilityID, 0, 2+len(u.Equipped.Magic)+len(u.Equipped.Items))
	if u.Equipped.Weapon != "" {
		ids = append(ids, u.Equipped.Weapon)
	}
	if u.Equipped.Support != "" {
		ids = append(ids, u.Equipped.Support)
	}
	ids = append(ids, u.Equipped.Magic...)
	ids = append(ids, u.Equipped.Items...)
	return ids
}

// State возвращает текущее состояние боя (read-only снапшот для рендера).
func (s *Service) State() *battle.State {
	return s.state
}

// RegisterAbility добавляет способность в каталог сессии.
func (s *Service) RegisterAbility(a ability.Ability) error {
	return s.registry.Register(a)
}

// GetAbility возвращает способность по ID или nil.
func (s *Service) GetAbility(id domain.AbilityID) ability.Ability {
	return s.registry.Get(id)
}

// AllAbilities возвращает каталог целиком, отсортированный по ID.
func (s *Service) AllAbilities() []ability.Ability {
	return s.registry.All()
}

// ProcessTick продвигает планировщик на один шаг. Если этим вызовом
// активировался юнит, фасад возвращает его в Idle — сброс action-state
// при новой активации по контракту лежит на Game System, не на планировщике.
func (s *Service) ProcessTick() *domain.Unit {
	activated := s.state.ProcessTick()
	if activated != nil {
		activated.ActionState = domain.ActionStateIdle
		s.log.WithFields(logrus.Fields{
			"unit_id": activated.ID,
			"name":    activated.Name,
			"ct":      activated.Stats.CT,
			"tick":    s.state.TickCount,
		}).Debug("Unit activated")
	}
	return activated
}

// UnitMoveRange возвращает клетки, куда юнит может пойти в этом ходу.
func (s *Service) UnitMoveRange(unitID domain.UnitID) []domain.Position {
	return s.state.MoveRange(unitID)
}

// FindPath строит маршрут для аниматора по правилам проходимости ядра.
func (s *Service) FindPath(start, end domain.Position) battle.PathResult {
	return s.state.FindPath(start, end)
}

// MoveUnit пытается переместить юнита. Возвращает false без каких-либо
// изменений состояния, если нарушено любое из условий: юнит существует,
// он активен, его ход не закончен, цель входит в MoveRange.
func (s *Service) MoveUnit(unitID domain.UnitID, target domain.Position) bool {
	u := s.state.Unit(unitID)
	if u == nil || s.state.ActiveUnitID != unitID || u.ActionState == domain.ActionStateTurnEnded {
		return false
	}

	legal := false
	for _, pos := range s.state.MoveRange(unitID) {
		if pos == target {
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	from := u.Pos
	u.MoveTo(target)
	u.ActionState = u.ActionState.NextAfterMove()

	s.log.WithFields(logrus.Fields{
		"unit_id": unitID,
		"from":    from,
		"to":      target,
		"facing":  u.Facing.String(),
		"state":   u.ActionState.String(),
	}).Debug("Unit moved")

	if u.ActionState == domain.ActionStateTurnEnded {
		s.state.CompleteActivation(u)
	}
	return true
}

// MarkActionUsed — явный пас: тратит действие юнита без эффекта.
// Те же предусловия, что у ExecuteAbility, минус таргетинг.
func (s *Service) MarkActionUsed(unitID domain.UnitID) ActionResult {
	u := s.state.Unit(unitID)
	if u == nil {
		return ActionResult{Success: false, Reason: ReasonSourceUnitNotFound}
	}
	if s.state.ActiveUnitID != unitID {
		return ActionResult{Success: false, Reason: ReasonNotActiveUnit}
	}
	if u.ActionState == domain.ActionStateTurnEnded {
		return ActionResult{Success: false, Reason: ReasonTurnAlreadyEnded}
	}

	u.ActionState = u.ActionState.NextAfterAction()
	if u.ActionState == domain.ActionStateTurnEnded {
		s.state.CompleteActivation(u)
	}
	return ActionResult{Success: true}
}
