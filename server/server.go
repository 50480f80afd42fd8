package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/clab/engine"
	"github.com/minaorangina/clab/players"
	"github.com/minaorangina/clab/store"
	"go.uber.org/zap"
)

type Opts struct {
	Engine *engine.Engine
	// AllowedOrigins may contain "*" to accept any origin
	AllowedOrigins []string
	ConnOpts       players.WSConnOpts
	Logger         *zap.Logger
}

// GameServer is a game server
type GameServer struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
	connOpts players.WSConnOpts
	log      *zap.Logger
	http.Server
}

type HealthRes struct {
	OK    bool `json:"ok"`
	Rooms int  `json:"rooms"`
}

// NewServer creates a new GameServer
func NewServer(opts Opts) *GameServer {
	s := &GameServer{
		engine:   opts.Engine,
		connOpts: opts.ConnOpts,
		log:      opts.Logger,
	}
	if s.engine == nil {
		s.engine = engine.New(engine.Opts{Logger: opts.Logger})
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.connOpts.Logger == nil {
		s.connOpts.Logger = s.log
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}

	router := chi.NewRouter()
	router.Get("/ws", s.HandleWS)
	router.Get("/health", s.HandleHealth)
	router.Get("/rooms/{roomID}", s.HandleRoom)

	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.log}))(h)
	h = handlers.CustomLoggingHandler(io.Discard, h, accessLogFormatter(s.log))

	s.Handler = h

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleWS upgrades the request and pumps the connection until it drops
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.log.Info("could not upgrade to websocket", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}

	conn := players.NewWSConn(ws, g.connOpts)
	go conn.WritePump()

	id := g.engine.Connect(conn)
	conn.ReadPump(func(data []byte) {
		g.engine.Receive(id, data)
	})
	g.engine.Disconnect(id)
}

func (g *GameServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, g.log, http.StatusOK, HealthRes{OK: true, Rooms: g.engine.Rooms().Len()})
}

func (g *GameServer) HandleRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	snap, err := g.engine.Rooms().Snapshot(roomID)
	if errors.Is(err, store.ErrNoSuchRoom) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownRoomIDMsg(roomID)))
		return
	}
	if err != nil {
		g.log.Error("could not read room", zap.String("roomId", roomID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, g.log, http.StatusOK, snap)
}
