package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/frame"
)

// the frame protocol caps a frame at four buttons
const maxFrameButtons = 4

type gamePlayService interface {
	NewGame(ctx context.Context, fid, difficulty string) (*entity.Game, string, error)
	PlayMove(ctx context.Context, fid, stateToken string, cell int) (*entity.Game, string, error)
	View(ctx context.Context, stateToken string) (*entity.Game, error)
}

type statsService interface {
	GetStats(ctx context.Context, fid string) (*entity.Stats, error)
}

type authService interface {
	GenerateToken(fid string) (string, error)
	ParseToken(tokenString string) (string, error)
}

type userService interface {
	GetOrFetchUser(ctx context.Context, fid string) (*entity.User, error)
}

type Handlers struct {
	logger *slog.Logger

	gamePlay gamePlayService
	stats    statsService
	auth     authService
	user     userService

	imageBaseURL string
	postURL      string
}

func NewHandlers(logger *slog.Logger, gamePlay gamePlayService, stats statsService, auth authService, user userService, imageBaseURL, postURL string) *Handlers {
	return &Handlers{
		logger:       logger.With("component", "rest"),
		gamePlay:     gamePlay,
		stats:        stats,
		auth:         auth,
		user:         user,
		imageBaseURL: imageBaseURL,
		postURL:      postURL,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// GetFrame - the entry frame: a cover image and the new-game choices.
func (that *Handlers) GetFrame(w http.ResponseWriter, _ *http.Request) {
	response := &frame.Response{
		Title:    "Tic-Tac-Toe",
		ImageURL: that.imageBaseURL + "/cover.png",
		PostURL:  that.postURL,
		Buttons: []frame.Button{
			{Label: "Easy", Action: frame.NewGameAction(entity.DifficultyEasy)},
			{Label: "Medium", Action: frame.NewGameAction(entity.DifficultyMedium)},
			{Label: "Hard", Action: frame.NewGameAction(entity.DifficultyHard)},
		},
	}

	that.writeFrame(w, response)
}

type frameRequest struct {
	FID    string `json:"fid"`
	Action string `json:"action"`
}

// PostFrame - one game interaction. The button the user pressed carries the
// whole prior game state; a button we can't parse starts over at the entry
// frame instead of failing the request.
func (that *Handlers) PostFrame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "PostFrame")

	var req frameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	action, err := frame.ParseAction(req.Action)
	if err != nil {
		log.Warn("unreadable frame action, serving entry frame", "error", err)
		that.GetFrame(w, r)
		return
	}

	switch action.Kind {
	case frame.KindNewGame:
		that.handleNewGame(w, r, req.FID, action.Difficulty)
	case frame.KindMove:
		that.handleMove(w, r, req.FID, action)
	case frame.KindPickRow:
		that.handlePickRow(w, r, action)
	case frame.KindBoard:
		that.handleBoard(w, r, action)
	}
}

func (that *Handlers) handleNewGame(w http.ResponseWriter, r *http.Request, fid, difficulty string) {
	game, stateToken, err := that.gamePlay.NewGame(r.Context(), fid, difficulty)
	if err != nil {
		that.logger.Error("failed to start game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeFrame(w, that.gameFrame(game, stateToken, "Your move"))
}

func (that *Handlers) handleMove(w http.ResponseWriter, r *http.Request, fid string, action *frame.Action) {
	game, stateToken, err := that.gamePlay.PlayMove(r.Context(), fid, action.Token, action.Cell)

	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		that.writeFrame(w, that.gameFrame(game, stateToken, "Cell is taken, try another"))
		return
	case errors.Is(err, apperror.ErrGameFinished):
		that.writeFrame(w, that.gameFrame(game, stateToken, "Game is over, start a new one"))
		return
	case err != nil:
		that.logger.Error("failed to play move", "fid", fid, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeFrame(w, that.gameFrame(game, stateToken, resultMessage(game)))
}

// handlePickRow - second step of the paged cell choice: the free cells of
// one row plus a way back to the row chooser.
func (that *Handlers) handlePickRow(w http.ResponseWriter, r *http.Request, action *frame.Action) {
	game, err := that.gamePlay.View(r.Context(), action.Token)
	if err != nil {
		that.logger.Warn("unreadable state token, serving entry frame", "error", err)
		that.GetFrame(w, r)
		return
	}

	if game.IsFinished() {
		that.writeFrame(w, that.gameFrame(game, action.Token, resultMessage(game)))
		return
	}

	if len(game.EmptyCellsInRow(action.Row)) == 0 {
		that.writeFrame(w, that.gameFrame(game, action.Token, "Row is full, pick another"))
		return
	}

	that.writeFrame(w, that.rowFrame(game, action.Token, action.Row))
}

// handleBoard - the Back button: re-serves the position's own frame.
func (that *Handlers) handleBoard(w http.ResponseWriter, r *http.Request, action *frame.Action) {
	game, err := that.gamePlay.View(r.Context(), action.Token)
	if err != nil {
		that.logger.Warn("unreadable state token, serving entry frame", "error", err)
		that.GetFrame(w, r)
		return
	}

	that.writeFrame(w, that.gameFrame(game, action.Token, "Your move"))
}

// gameFrame - renders a position as a frame: a board image referencing the
// encoded state, plus the cell choices or the new-game button once the game
// is over. With more free cells than the button budget allows, the choice
// is paged by row first.
func (that *Handlers) gameFrame(game *entity.Game, stateToken, message string) *frame.Response {
	response := &frame.Response{
		Title:    message,
		ImageURL: that.boardImageURL(stateToken),
		PostURL:  that.postURL,
	}

	if game.IsFinished() {
		response.Buttons = []frame.Button{
			{Label: "Play again", Action: frame.NewGameAction(game.Difficulty)},
		}
		return response
	}

	empties := game.EmptyCells()
	if len(empties) <= maxFrameButtons {
		for _, cell := range empties {
			response.Buttons = append(response.Buttons, frame.Button{
				Label:  entity.CellLabels[cell],
				Action: frame.MoveAction(stateToken, cell),
			})
		}
		return response
	}

	for row, label := range entity.RowLabels {
		if len(game.EmptyCellsInRow(row)) == 0 {
			continue
		}

		response.Buttons = append(response.Buttons, frame.Button{
			Label:  "Row " + label,
			Action: frame.RowAction(stateToken, row),
		})
	}

	return response
}

// rowFrame - the free cells of one row, at most three, plus Back.
func (that *Handlers) rowFrame(game *entity.Game, stateToken string, row int) *frame.Response {
	response := &frame.Response{
		Title:    "Pick a cell in row " + entity.RowLabels[row],
		ImageURL: that.boardImageURL(stateToken),
		PostURL:  that.postURL,
	}

	for _, cell := range game.EmptyCellsInRow(row) {
		response.Buttons = append(response.Buttons, frame.Button{
			Label:  entity.CellLabels[cell],
			Action: frame.MoveAction(stateToken, cell),
		})
	}

	response.Buttons = append(response.Buttons, frame.Button{
		Label:  "Back",
		Action: frame.BoardAction(stateToken),
	})

	return response
}

func (that *Handlers) boardImageURL(stateToken string) string {
	return fmt.Sprintf("%s/board.png?state=%s", that.imageBaseURL, url.QueryEscape(stateToken))
}

func resultMessage(game *entity.Game) string {
	switch game.Winner {
	case entity.PlayerX:
		return "You won!"
	case entity.PlayerO:
		return "You lost"
	case entity.PlayerTie:
		return "It's a tie"
	default:
		return "Your move"
	}
}

func (that *Handlers) writeFrame(w http.ResponseWriter, response *frame.Response) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(response.RenderHTML())); err != nil {
		that.logger.Error("failed to write frame response", "error", err)
	}
}

type sessionRequest struct {
	FID string `json:"fid"`
}

// CreateSession - exchanges a fid for a session token for the leaderboard client.
func (that *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tokenString, err := that.auth.GenerateToken(req.FID)
	if err != nil {
		that.logger.Error("failed to generate session token", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, map[string]string{"token": tokenString})
}

type statsResponse struct {
	User  *entity.User  `json:"user,omitempty"`
	Stats *entity.Stats `json:"stats"`
}

func (that *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	fid := chi.URLParam(r, "fid")

	stats, err := that.stats.GetStats(r.Context(), fid)
	if err != nil {
		that.logger.Error("failed to get stats", "fid", fid, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// the profile is decoration, stats still come back without it
	user, err := that.user.GetOrFetchUser(r.Context(), fid)
	if err != nil {
		that.logger.Warn("failed to get user profile", "fid", fid, "error", err)
		user = nil
	}

	that.writeJSON(w, &statsResponse{User: user, Stats: stats})
}

// GetOwnStats - stats for the caller identified by their session token.
func (that *Handlers) GetOwnStats(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || tokenString == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	fid, err := that.auth.ParseToken(tokenString)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := that.stats.GetStats(r.Context(), fid)
	if err != nil {
		that.logger.Error("failed to get stats", "fid", fid, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, &statsResponse{Stats: stats})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
