package arena

import (
	stderrors "errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"opening_arena/internal/bootstrap"
	arenadom "opening_arena/internal/domain/arena"
	errs "opening_arena/internal/errors"
	"opening_arena/internal/httpresponse"
	arenauc "opening_arena/internal/usecase/arena"
	"opening_arena/internal/utils"
)

type ArenaHandler struct {
	cfg     bootstrap.Config
	log     *zap.SugaredLogger
	arenaUC *arenauc.ArenaUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewArenaHandler(cfg bootstrap.Config, log *zap.SugaredLogger, arenaUC *arenauc.ArenaUseCase) *ArenaHandler {
	return &ArenaHandler{
		cfg:     cfg,
		log:     log,
		arenaUC: arenaUC,
	}
}

type duelByIDRequest struct {
	DuelID string `json:"duel_id"`
}

// HandleRunDuel runs a full duel from two PGN payloads and responds with the
// finished record.
func (h *ArenaHandler) HandleRunDuel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.log.Error("HandleRunDuel: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req arenadom.DuelRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleRunDuel: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if req.WhitePGN == "" || req.BlackPGN == "" {
		h.log.Error("HandleRunDuel: empty repertoire payload")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "white_pgn and black_pgn are required"})
		return
	}

	record, err := h.arenaUC.RunDuel(r.Context(), req, nil)
	if err != nil {
		h.log.Error("HandleRunDuel: ", err)
		status := http.StatusInternalServerError
		if stderrors.Is(err, errs.ErrNoGamesFound) {
			status = http.StatusBadRequest
		}
		httpresponse.WriteResponseWithStatus(w, status,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	h.log.Infof("duel finished: %s after %d plies", record.Result.Termination, len(record.Result.Moves))
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

// HandleGetDuel returns a previously stored duel by its id.
func (h *ArenaHandler) HandleGetDuel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.log.Error("HandleGetDuel: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req duelByIDRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleGetDuel: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}
	if req.DuelID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "duel_id is required"})
		return
	}

	record, err := h.arenaUC.GetDuelByID(r.Context(), req.DuelID)
	if err != nil {
		if stderrors.Is(err, errs.ErrDuelNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			return
		}
		h.log.Error("HandleGetDuel: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: errs.ErrInternal.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

type liveFrame struct {
	Type   string               `json:"type"` // "ply" or "result"
	Ply    *arenadom.PlyEvent   `json:"ply,omitempty"`
	Record *arenadom.DuelRecord `json:"record,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// HandleLiveDuel upgrades to a websocket, reads one DuelRequest and streams
// every played ply as its own frame, then the final record.
func (h *ArenaHandler) HandleLiveDuel(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("HandleLiveDuel: upgrade error: ", err)
		return
	}
	defer conn.Close()

	var req arenadom.DuelRequest
	if err := conn.ReadJSON(&req); err != nil {
		h.log.Error("HandleLiveDuel: read error: ", err)
		conn.WriteJSON(liveFrame{Type: "result", Error: "malformed duel request"})
		return
	}
	if req.WhitePGN == "" || req.BlackPGN == "" {
		conn.WriteJSON(liveFrame{Type: "result", Error: "white_pgn and black_pgn are required"})
		return
	}

	observer := func(ev arenadom.PlyEvent) {
		if err := conn.WriteJSON(liveFrame{Type: "ply", Ply: &ev}); err != nil {
			h.log.Error("HandleLiveDuel: write error: ", err)
		}
	}

	record, err := h.arenaUC.RunDuel(r.Context(), req, observer)
	if err != nil {
		h.log.Error("HandleLiveDuel: ", err)
		conn.WriteJSON(liveFrame{Type: "result", Error: err.Error()})
		return
	}

	conn.WriteJSON(liveFrame{Type: "result", Record: &record})
}
