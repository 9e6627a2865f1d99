package engine

import (
	"tactics-server/internal/battle"
	"tactics-server/pkg/api"
)

// Snapshot собирает DTO текущего состояния боя.
// full=true добавляет террейн и каталог способностей (ответ на INIT);
// обычные апдейты несут только список юнитов и счётчики.
func (s *Service) Snapshot(full bool) *api.ServerResponse {
	st := s.state

	resp := &api.ServerResponse{
		Type:         "UPDATE",
		ActiveUnitID: st.ActiveUnitID.String(),
		TurnCount:    st.TurnCount,
		TickCount:    st.TickCount,
		Units:        make([]api.UnitView, 0, len(st.Units)),
	}

	for _, u := range st.Units {
		resp.Units = append(resp.Units, api.UnitView{
			ID:          u.ID.String(),
			Name:        u.Name,
			Job:         string(u.Job),
			TeamID:      u.TeamID,
			Pos:         api.PositionView{X: u.Pos.X, Y: u.Pos.Y},
			Facing:      u.Facing.String(),
			HP:          u.Stats.HP,
			MaxHP:       u.Stats.MaxHP,
			ATK:         u.Stats.ATK,
			DEF:         u.Stats.DEF,
			MAG:         u.Stats.MAG,
			RES:         u.Stats.RES,
			SPD:         u.Stats.SPD,
			MOV:         u.Stats.MOV,
			MP:          u.Stats.MP,
			MaxMP:       u.Stats.MaxMP,
			CT:          u.Stats.CT,
			ActionState: u.ActionState.String(),
		})
	}

	if full {
		resp.Type = "INIT"
		resp.Grid = &api.GridMeta{Width: st.Map.Width(), Height: st.Map.Height()}

		tiles := st.Map.Tiles()
		resp.Tiles = make([]api.TileView, 0, len(tiles))
		for _, t := range tiles {
			resp.Tiles = append(resp.Tiles, api.TileView{
				X:        t.Pos.X,
				Y:        t.Pos.Y,
				Height:   t.Height,
				Passable: t.Passable,
			})
		}

		for _, a := range s.registry.All() {
			def := a.Def()
			resp.Abilities = append(resp.Abilities, api.AbilityView{
				ID:         def.ID.String(),
				Name:       def.Name,
				Type:       string(def.Type),
				TargetType: string(def.TargetType),
				EffectKind: string(def.EffectKind),
				Range:      def.Range,
				Radius:     def.Radius,
				Power:      def.Power,
				Element:    def.Element,
				MPCost:     def.MPCost,
				Rarity:     def.Rarity,
			})
		}
	}

	return resp
}

// EffectViews конвертирует доменные дельты статов в DTO.
func EffectViews(effects []battle.StatChange) []api.EffectView {
	if len(effects) == 0 {
		return nil
	}
	out := make([]api.EffectView, 0, len(effects))
	for _, e := range effects {
		out = append(out, api.EffectView{
			UnitID: e.UnitID.String(),
			Stat:   e.Stat,
			Before: e.Before,
			After:  e.After,
			Delta:  e.Delta,
		})
	}
	return out
}
