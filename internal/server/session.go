package server

import (
	"time"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/internal/engine"
	"tactics-server/internal/engine/handlers"
	"tactics-server/internal/engine/handlers/actions"
	"tactics-server/internal/network"
	"tactics-server/internal/storage"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
)

// Session — один боевой матч, поднятый на сервере: фасад ядра, цикл
// обработки команд, рассылка снапшотов и журнал принятых команд.
//
// Ядро однопоточное, поэтому ВСЕ команды и тики проходят через один
// цикл Run: websocket-клиенты только кладут команды в канал.
type Session struct {
	Service *engine.Service
	Hub     *network.Broadcaster
	Journal *storage.Journal

	CommandChan chan domain.InternalCommand

	actionHandlers map[domain.ActionType]handlers.HandlerFunc
	tickEvery      time.Duration
	stop           chan struct{}
	log            *logrus.Entry
}

// NewSession собирает сессию вокруг готового фасада.
// tickEvery — частота тиков CT-планировщика; каденция это забота сервера,
// ядро лишь гарантирует семантику одного вызова ProcessTick.
func NewSession(svc *engine.Service, tickEvery time.Duration) *Session {
	s := &Session{
		Service:        svc,
		Hub:            network.NewBroadcaster(),
		Journal:        storage.NewJournal(time.Now().Unix()),
		CommandChan:    make(chan domain.InternalCommand, 100),
		actionHandlers: make(map[domain.ActionType]handlers.HandlerFunc),
		tickEvery:      tickEvery,
		stop:           make(chan struct{}),
		log:            logger.WithComponent("session"),
	}
	s.registerHandlers()
	return s
}

func (s *Session) registerHandlers() {
	s.actionHandlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.actionHandlers[domain.ActionTick] = handlers.WithEmptyPayload(actions.HandleTick)
	s.actionHandlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.actionHandlers[domain.ActionMoveRange] = handlers.WithPayload(actions.HandleMoveRange)
	s.actionHandlers[domain.ActionAbility] = handlers.WithPayload(actions.HandleAbility)
	s.actionHandlers[domain.ActionPass] = handlers.WithPayload(actions.HandlePass)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
func (s *Session) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		s.log.WithField("action", externalCmd.Action).Warn("Unknown action")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
}

// Start запускает игровой цикл в отдельной горутине.
func (s *Session) Start() {
	go s.Run()
}

// Stop останавливает игровой цикл.
func (s *Session) Stop() {
	close(s.stop)
}

// Run — игровой цикл сессии. Тики планировщика идут по таймеру, пока
// никто не активен; команды клиентов выполняются по мере поступления.
func (s *Session) Run() {
	s.log.WithField("tick_every", s.tickEvery).Info("Session loop started")

	ticker := time.NewTicker(s.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.log.Info("Session loop stopped")
			return

		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)

		case <-ticker.C:
			// Пока чей-то ход — время стоит, ждём команд.
			if s.Service.State().ActiveUnitID != "" {
				continue
			}
			if activated := s.Service.ProcessTick(); activated != nil {
				s.Hub.Broadcast(*s.Service.Snapshot(false))
			}
		}
	}
}

// executeCommand выполняет хендлер, отвечает отправителю и при изменении
// состояния рассылает снапшот всем и пишет команду в журнал.
func (s *Session) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.actionHandlers[cmd.Action]
	if !ok {
		return
	}

	ctx := handlers.Context{Service: s.Service}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"token":  cmd.Token,
		}).Warn("Command rejected")
		s.Hub.SendTo(cmd.Token, api.ServerResponse{
			Type:   "RESULT",
			Result: &api.CommandResult{Success: false, Reason: "bad_payload"},
		})
		return
	}

	if result.Reply != nil {
		s.Hub.SendTo(cmd.Token, *result.Reply)
	}

	if result.StateChanged {
		st := s.Service.State()
		s.Journal.Record(st.TickCount, st.TurnCount, cmd)
		s.Hub.Broadcast(*s.Service.Snapshot(false))
	}
}

// SaveJournal сохраняет ленту команд сессии на диск.
func (s *Session) SaveJournal(dir string) {
	if len(s.Journal.Entries) == 0 {
		return
	}
	svc := storage.NewJournalService(dir)
	path, err := svc.Save(s.Journal)
	if err != nil {
		s.log.WithError(err).Error("Failed to save battle journal")
		return
	}
	s.log.WithFields(logrus.Fields{
		"path":    path,
		"entries": len(s.Journal.Entries),
	}).Info("Battle journal saved")
}
