package domain

// Job — класс юнита. Определяет шаблон базовых характеристик.
type Job string

const (
	JobKnight   Job = "KNIGHT"
	JobArcher   Job = "ARCHER"
	JobMage     Job = "MAGE"
	JobPriest   Job = "PRIEST"
	JobRogue    Job = "ROGUE"
	JobEngineer Job = "ENGINEER"
)

// Stats — характеристики юнита.
// CT (charge time) накапливается каждый тик планировщика на величину SPD;
// при CT >= 100 юнит получает активацию.
type Stats struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	ATK   int `json:"atk"`
	DEF   int `json:"def"`
	MAG   int `json:"mag"`
	RES   int `json:"res"`
	SPD   int `json:"spd"`
	MOV   int `json:"mov"`
	JMP   int `json:"jmp"`
	MP    int `json:"mp"`
	MaxMP int `json:"maxMp"`
	CT    int `json:"ct"`
}

// jobTemplates — базовые статы по классам.
// Балансные числа; правятся вместе с гейм-дизайном, не кодом.
var jobTemplates = map[Job]Stats{
	JobKnight:   {HP: 120, MaxHP: 120, ATK: 18, DEF: 16, MAG: 4, RES: 8, SPD: 8, MOV: 3, JMP: 2, MP: 10, MaxMP: 10},
	JobArcher:   {HP: 90, MaxHP: 90, ATK: 15, DEF: 10, MAG: 6, RES: 8, SPD: 10, MOV: 4, JMP: 2, MP: 12, MaxMP: 12},
	JobMage:     {HP: 70, MaxHP: 70, ATK: 6, DEF: 7, MAG: 30, RES: 14, SPD: 7, MOV: 3, JMP: 1, MP: 40, MaxMP: 40},
	JobPriest:   {HP: 80, MaxHP: 80, ATK: 7, DEF: 8, MAG: 22, RES: 25, SPD: 9, MOV: 3, JMP: 1, MP: 36, MaxMP: 36},
	JobRogue:    {HP: 85, MaxHP: 85, ATK: 16, DEF: 9, MAG: 8, RES: 9, SPD: 13, MOV: 5, JMP: 3, MP: 14, MaxMP: 14},
	JobEngineer: {HP: 95, MaxHP: 95, ATK: 12, DEF: 12, MAG: 12, RES: 12, SPD: 9, MOV: 3, JMP: 2, MP: 20, MaxMP: 20},
}

// JobTemplate возвращает копию шаблона статов для класса.
// Неизвестный класс получает шаблон Knight (и запись в логе на совести вызывающего).
func JobTemplate(job Job) Stats {
	if tpl, ok := jobTemplates[job]; ok {
		return tpl
	}
	return jobTemplates[JobKnight]
}

// AbilityID — идентификатор способности в каталоге.
type AbilityID string

func (id AbilityID) String() string { return string(id) }

// EquippedAbilities — слоты экипированных способностей юнита.
type EquippedAbilities struct {
	Weapon  AbilityID   `json:"weapon,omitempty"`
	Magic   []AbilityID `json:"magic,omitempty"`
	Support AbilityID   `json:"support,omitempty"`
	Items   []AbilityID `json:"items,omitempty"`
}

// Unit — боевая единица на поле.
//
// Живёт от setup до конца боя; при 0 HP остаётся на поле (труп),
// но перестаёт участвовать в очереди ходов и блокировать проход.
type Unit struct {
	ID     UnitID `json:"id"`
	Name   string `json:"name"`
	Job    Job    `json:"job"`
	TeamID int    `json:"teamId"`

	Pos    Position  `json:"pos"`
	Facing Direction `json:"facing"`

	Stats       Stats       `json:"stats"`
	ActionState ActionState `json:"actionState"`

	Equipped  EquippedAbilities `json:"equipped"`
	Inventory map[AbilityID]int `json:"inventory,omitempty"`
}

// NewUnit создает юнита по шаблону класса.
func NewUnit(name string, job Job, teamID int, pos Position) *Unit {
	return &Unit{
		ID:        GenerateID(),
		Name:      name,
		Job:       job,
		TeamID:    teamID,
		Pos:       pos,
		Facing:    DirectionSouth,
		Stats:     JobTemplate(job),
		Inventory: make(map[AbilityID]int),
	}
}

// Alive сообщает, жив ли юнит. Мёртвые не ходят и не блокируют клетки.
func (u *Unit) Alive() bool {
	return u.Stats.HP > 0
}

// MoveTo переставляет юнита и пересчитывает направление по вектору смещения.
func (u *Unit) MoveTo(pos Position) {
	u.Facing = DirectionOf(u.Pos, pos, u.Facing)
	u.Pos = pos
}

// TakeDamage наносит урон. Возвращает true, если юнит погиб от этого удара.
func (u *Unit) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	wasAlive := u.Alive()
	u.Stats.HP -= amount
	if u.Stats.HP < 0 {
		u.Stats.HP = 0
	}
	return wasAlive && !u.Alive()
}

// Heal восстанавливает здоровье, не превышая MaxHP. Трупы не лечим.
func (u *Unit) Heal(amount int) {
	if !u.Alive() || amount < 0 {
		return
	}
	u.Stats.HP += amount
	if u.Stats.HP > u.Stats.MaxHP {
		u.Stats.HP = u.Stats.MaxHP
	}
}

// SpendMP тратит ману. Возвращает false, если не хватило (без траты).
func (u *Unit) SpendMP(cost int) bool {
	if u.Stats.MP < cost {
		return false
	}
	u.Stats.MP -= cost
	return true
}

// RestoreMP восстанавливает ману, не превышая MaxMP.
func (u *Unit) RestoreMP(amount int) {
	if amount < 0 {
		return
	}
	u.Stats.MP += amount
	if u.Stats.MP > u.Stats.MaxMP {
		u.Stats.MP = u.Stats.MaxMP
	}
}

// ItemCount возвращает остаток зарядов предмета в инвентаре.
func (u *Unit) ItemCount(id AbilityID) int {
	if u.Inventory == nil {
		return 0
	}
	return u.Inventory[id]
}

// ConsumeItem списывает один заряд предмета. false — зарядов нет.
func (u *Unit) ConsumeItem(id AbilityID) bool {
	if u.ItemCount(id) <= 0 {
		return false
	}
	u.Inventory[id]--
	if u.Inventory[id] == 0 {
		delete(u.Inventory, id)
	}
	return true
}

// Clone возвращает глубокую копию юнита.
// Используется фасадом для отката состояния при сбоях способностей.
func (u *Unit) Clone() *Unit {
	cp := *u
	if u.Inventory != nil {
		cp.Inventory = make(map[AbilityID]int, len(u.Inventory))
		for k, v := range u.Inventory {
			cp.Inventory[k] = v
		}
	}
	if u.Equipped.Magic != nil {
		cp.Equipped.Magic = append([]AbilityID(nil), u.Equipped.Magic...)
	}
	if u.Equipped.Items != nil {
		cp.Equipped.Items = append([]AbilityID(nil), u.Equipped.Items...)
	}
	return &cp
}
