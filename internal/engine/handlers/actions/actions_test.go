package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"tactics-server/internal/domain"
	"tactics-server/internal/engine"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// newBattleContext поднимает сессию с дефолтным боем.
func newBattleContext(t *testing.T) handlers.Context {
	t.Helper()
	svc, err := engine.NewService(engine.Options{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if err := svc.SetupInitialState(); err != nil {
		t.Fatalf("SetupInitialState failed: %v", err)
	}
	return handlers.Context{Service: svc}
}

func unitByName(t *testing.T, ctx handlers.Context, name string) *domain.Unit {
	t.Helper()
	for _, u := range ctx.Service.State().Units {
		if u.Name == name {
			return u
		}
	}
	t.Fatalf("Unit %s not found in the roster", name)
	return nil
}

func TestHandleInit(t *testing.T) {
	ctx := newBattleContext(t)

	res, err := HandleInit(ctx)
	if err != nil {
		t.Fatalf("HandleInit failed: %v", err)
	}
	if res.StateChanged {
		t.Error("INIT must not change state")
	}

	reply := res.Reply
	if reply.Type != "INIT" {
		t.Errorf("Expected INIT reply, got %s", reply.Type)
	}
	if reply.Grid == nil || reply.Grid.Width != 13 || reply.Grid.Height != 13 {
		t.Errorf("Expected 13x13 grid meta, got %+v", reply.Grid)
	}
	if len(reply.Tiles) != 169 {
		t.Errorf("Expected 169 tiles, got %d", len(reply.Tiles))
	}
	if len(reply.Units) != 6 {
		t.Errorf("Expected 6 units, got %d", len(reply.Units))
	}
	if len(reply.Abilities) == 0 {
		t.Error("Expected the ability catalog in the INIT snapshot")
	}
}

func TestHandleTickDrivesScheduler(t *testing.T) {
	ctx := newBattleContext(t)

	// Rogue (spd 13) первым пересекает порог: 13 * 8 = 104.
	for i := 0; i < 8; i++ {
		if _, err := HandleTick(ctx); err != nil {
			t.Fatalf("HandleTick failed: %v", err)
		}
	}
	vex := unitByName(t, ctx, "Vex")
	if ctx.Service.State().ActiveUnitID != vex.ID {
		t.Errorf("Expected Vex active after 8 ticks, got %q", ctx.Service.State().ActiveUnitID)
	}
}

func TestHandleMoveThroughWrapper(t *testing.T) {
	ctx := newBattleContext(t)
	aldric := unitByName(t, ctx, "Aldric")
	ctx.Service.State().ActiveUnitID = aldric.ID

	wrapped := handlers.WithPayload(HandleMove)

	// Мусорный JSON отбивается обёрткой до хендлера.
	if _, err := wrapped(ctx, json.RawMessage(`{broken`)); err == nil {
		t.Error("Expected error for malformed payload")
	}
	// Валидация DTO: unitId обязателен.
	if _, err := wrapped(ctx, json.RawMessage(`{"x":1,"y":4}`)); err == nil {
		t.Error("Expected validation error for missing unitId")
	}

	// Легальный ход: соседи (2,1) и (1,2) заняты союзниками, поэтому
	// обходим поверху — (1,1) -> (1,0) -> (2,0) -> (3,0), ровно mov 3.
	payload := json.RawMessage(fmt.Sprintf(`{"unitId":%q,"x":3,"y":0}`, aldric.ID))
	res, err := wrapped(ctx, payload)
	if err != nil {
		t.Fatalf("HandleMove failed: %v", err)
	}
	if !res.StateChanged || !res.Reply.Result.Success {
		t.Fatalf("Expected successful move, got %+v", res.Reply.Result)
	}
	if aldric.Pos != (domain.Position{X: 3, Y: 0}) {
		t.Errorf("Expected Aldric at (3,0), got %v", aldric.Pos)
	}

	// Нелегальный ход: за пределы бюджета.
	payload = json.RawMessage(fmt.Sprintf(`{"unitId":%q,"x":12,"y":12}`, aldric.ID))
	res, err = wrapped(ctx, payload)
	if err != nil {
		t.Fatalf("HandleMove failed: %v", err)
	}
	if res.StateChanged || res.Reply.Result.Success {
		t.Error("Illegal move must not change state")
	}
	if res.Reply.Result.Reason != "illegal_move" {
		t.Errorf("Expected illegal_move, got %q", res.Reply.Result.Reason)
	}
}

func TestHandleMoveRange(t *testing.T) {
	ctx := newBattleContext(t)
	vex := unitByName(t, ctx, "Vex")

	res, err := HandleMoveRange(ctx, api.MoveRangePayload{UnitID: vex.ID.String()})
	if err != nil {
		t.Fatalf("HandleMoveRange failed: %v", err)
	}
	if res.StateChanged {
		t.Error("MOVE_RANGE must not change state")
	}
	if res.Reply.Type != "MOVE_RANGE" || len(res.Reply.MoveRange) == 0 {
		t.Errorf("Expected populated MOVE_RANGE reply, got %+v", res.Reply)
	}
}

func TestHandleAbilityAndPass(t *testing.T) {
	ctx := newBattleContext(t)
	selene := unitByName(t, ctx, "Selene")
	aldric := unitByName(t, ctx, "Aldric")
	ctx.Service.State().ActiveUnitID = selene.ID

	// Fireball по союзнику — отказ с типизированной причиной.
	target := aldric.ID.String()
	res, err := HandleAbility(ctx, api.AbilityPayload{
		ActorID:      selene.ID.String(),
		AbilityID:    "fireball",
		TargetUnitID: &target,
	})
	if err != nil {
		t.Fatalf("HandleAbility failed: %v", err)
	}
	if res.StateChanged || res.Reply.Result.Success {
		t.Error("Failed ability must not mark state as changed")
	}
	if res.Reply.Result.Reason != "invalid_target" {
		t.Errorf("Expected invalid_target, got %q", res.Reply.Result.Reason)
	}

	// Пас тратит действие.
	resPass, err := HandlePass(ctx, api.PassPayload{UnitID: selene.ID.String()})
	if err != nil {
		t.Fatalf("HandlePass failed: %v", err)
	}
	if !resPass.StateChanged || !resPass.Reply.Result.Success {
		t.Fatalf("Expected successful pass, got %+v", resPass.Reply.Result)
	}
	if selene.ActionState != domain.ActionStateActionUsed {
		t.Errorf("Expected ACTION_USED after pass, got %v", selene.ActionState)
	}
}
