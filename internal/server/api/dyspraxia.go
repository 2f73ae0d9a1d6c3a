package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/motionlab/internal/balance"
	"github.com/ayusman/motionlab/internal/catalog"
	"github.com/ayusman/motionlab/internal/server/middleware"
	"github.com/ayusman/motionlab/internal/session"
)

// UserHeader carries the caller identity set by the upstream auth proxy.
const UserHeader = "X-User-ID"

// Prefix is the mount point of DyspraxiaHandler.
const Prefix = "/api/dyspraxia"

type route struct {
	method string
	user   bool
	handle func(h *DyspraxiaHandler, w http.ResponseWriter, r *http.Request, userID string)
}

var routes = map[string]route{
	"process-frame":         {http.MethodPost, false, (*DyspraxiaHandler).processFrame},
	"detect-movement":       {http.MethodPost, false, (*DyspraxiaHandler).detectMovement},
	"detect-hand-gesture":   {http.MethodPost, false, (*DyspraxiaHandler).detectGesture},
	"validate-gesture":      {http.MethodPost, false, (*DyspraxiaHandler).validateGesture},
	"detect-pose":           {http.MethodPost, false, (*DyspraxiaHandler).detectPose},
	"balance-exercise":      {http.MethodPost, false, (*DyspraxiaHandler).balanceExercise},
	"exercises":             {http.MethodGet, false, (*DyspraxiaHandler).listExercises},
	"games":                 {http.MethodGet, false, (*DyspraxiaHandler).listGames},
	"camera-exercises":      {http.MethodGet, false, (*DyspraxiaHandler).listCameraExercises},
	"submit-balance-result": {http.MethodPost, true, (*DyspraxiaHandler).submitBalanceResult},
	"save-camera-exercise":  {http.MethodPost, true, (*DyspraxiaHandler).saveCameraExercise},
	"save-game-results":     {http.MethodPost, true, (*DyspraxiaHandler).saveGameResults},
	"game-stats":            {http.MethodGet, true, (*DyspraxiaHandler).gameStats},
}

// DyspraxiaHandler serves the frame analysis, catalog and results endpoints.
type DyspraxiaHandler struct {
	service  *session.Service
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewDyspraxiaHandler creates a new DyspraxiaHandler.
func NewDyspraxiaHandler(service *session.Service, log logrus.FieldLogger) *DyspraxiaHandler {
	return &DyspraxiaHandler{
		service:  service,
		validate: NewValidator(),
		log:      log.WithField("component", "api"),
	}
}

// ServeHTTP routes /api/dyspraxia/{action} requests.
func (h *DyspraxiaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.Trim(strings.TrimPrefix(r.URL.Path, Prefix), "/")

	rt, ok := routes[action]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != rt.method {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID := strings.TrimSpace(r.Header.Get(UserHeader))
	if rt.user && userID == "" {
		writeError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	rt.handle(h, w, r, userID)
}

// Response types. Each embeds the session result so that its fields sit next
// to the success flag.

type frameResponse struct {
	Success bool `json:"success"`
	session.FrameResult
}

type movementResponse struct {
	Success bool `json:"success"`
	session.MovementResult
}

type gestureResponse struct {
	Success bool `json:"success"`
	session.GestureResult
}

type validateResponse struct {
	Success bool `json:"success"`
	session.ValidateResult
}

type poseResponse struct {
	Success bool `json:"success"`
	session.PoseResult
}

type exerciseResponse struct {
	Success  bool             `json:"success"`
	Exercise catalog.Exercise `json:"exercise"`
}

type exercisesResponse struct {
	Success   bool               `json:"success"`
	Exercises []catalog.Exercise `json:"exercises"`
}

type gamesResponse struct {
	Success bool           `json:"success"`
	Games   []catalog.Game `json:"games"`
}

type cameraExercisesResponse struct {
	Success   bool                     `json:"success"`
	Exercises []catalog.CameraExercise `json:"exercises"`
}

type balanceResultResponse struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Evaluation *balance.Evaluation `json:"evaluation,omitempty"`
}

type statsResponse struct {
	Success bool              `json:"success"`
	Stats   session.GameStats `json:"stats"`
}

// difficultyRequest defaults to easy only when the field is absent; an
// explicit value, empty included, is matched as sent.
type difficultyRequest struct {
	Difficulty *string `json:"difficulty"`
}

func (h *DyspraxiaHandler) processFrame(w http.ResponseWriter, r *http.Request, _ string) {
	var req session.FrameRequest
	if !bind(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, frameResponse{Success: true, FrameResult: h.service.ProcessFrame(req)})
}

func (h *DyspraxiaHandler) detectMovement(w http.ResponseWriter, r *http.Request, _ string) {
	var req session.MovementRequest
	if !bind(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, movementResponse{Success: true, MovementResult: h.service.DetectMovement(req)})
}

func (h *DyspraxiaHandler) detectGesture(w http.ResponseWriter, r *http.Request, _ string) {
	var req session.GestureRequest
	if !bind(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, gestureResponse{Success: true, GestureResult: h.service.DetectGesture(req)})
}

func (h *DyspraxiaHandler) validateGesture(w http.ResponseWriter, r *http.Request, _ string) {
	var req session.ValidateRequest
	if !bind(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Success: true, ValidateResult: h.service.ValidateGesture(req)})
}

func (h *DyspraxiaHandler) detectPose(w http.ResponseWriter, r *http.Request, _ string) {
	var req session.PoseRequest
	if !bind(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, poseResponse{Success: true, PoseResult: h.service.DetectPose(req)})
}

func (h *DyspraxiaHandler) balanceExercise(w http.ResponseWriter, r *http.Request, _ string) {
	var req difficultyRequest
	if !bind(w, r, h.validate, &req) {
		return
	}
	difficulty := string(catalog.Easy)
	if req.Difficulty != nil {
		difficulty = *req.Difficulty
	}
	writeJSON(w, http.StatusOK, exerciseResponse{Success: true, Exercise: h.service.BalanceExercise(difficulty)})
}

func (h *DyspraxiaHandler) listExercises(w http.ResponseWriter, r *http.Request, _ string) {
	exercises := catalog.Exercises()
	if d := r.URL.Query().Get("difficulty"); d != "" {
		exercises = catalog.ByDifficulty(catalog.Difficulty(d))
		if exercises == nil {
			exercises = []catalog.Exercise{}
		}
	}
	writeJSON(w, http.StatusOK, exercisesResponse{Success: true, Exercises: exercises})
}

func (h *DyspraxiaHandler) listGames(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, gamesResponse{Success: true, Games: catalog.Games()})
}

func (h *DyspraxiaHandler) listCameraExercises(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, cameraExercisesResponse{Success: true, Exercises: catalog.CameraExercises()})
}

func (h *DyspraxiaHandler) submitBalanceResult(w http.ResponseWriter, r *http.Request, userID string) {
	var req session.BalanceResultRequest
	if !bind(w, r, h.validate, &req) {
		return
	}

	eval, err := h.service.SubmitBalanceResult(userID, req)
	if err != nil {
		h.fail(w, r, err, "Error saving progress")
		return
	}
	writeJSON(w, http.StatusOK, balanceResultResponse{
		Success:    true,
		Message:    "Progress saved successfully",
		Evaluation: eval,
	})
}

func (h *DyspraxiaHandler) saveCameraExercise(w http.ResponseWriter, r *http.Request, userID string) {
	var req session.CameraResultRequest
	if !bind(w, r, h.validate, &req) {
		return
	}

	if err := h.service.SaveCameraExercise(userID, req); err != nil {
		h.fail(w, r, err, "Error saving result")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Camera exercise result saved"})
}

func (h *DyspraxiaHandler) saveGameResults(w http.ResponseWriter, r *http.Request, userID string) {
	var req session.GameResultRequest
	if !bind(w, r, h.validate, &req) {
		return
	}

	if err := h.service.SaveGameResults(userID, req); err != nil {
		h.fail(w, r, err, "Failed to save game results")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Game results saved successfully"})
}

func (h *DyspraxiaHandler) gameStats(w http.ResponseWriter, r *http.Request, userID string) {
	stats, err := h.service.GameStats(userID)
	if err != nil {
		h.fail(w, r, err, "Error getting stats")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Success: true, Stats: stats})
}

// fail maps a service error to a response and logs server-side failures.
func (h *DyspraxiaHandler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, session.ErrMissingUser) {
		writeError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(r.Context()),
		"path":       r.URL.Path,
		"error":      err.Error(),
	}).Error("request failed")
	writeError(w, http.StatusInternalServerError, message)
}
