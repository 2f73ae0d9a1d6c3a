package server

import (
	"net/http"
	"sync"

	"github.com/ayusman/motionlab/internal/frame"
	"github.com/ayusman/motionlab/internal/server/api"
	"github.com/ayusman/motionlab/internal/server/middleware"
	"github.com/ayusman/motionlab/internal/session"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Stream modes.
const (
	ModeHand = "hand"
	ModePose = "pose"
)

// StreamContext selects which analysis a stream message runs.
type StreamContext struct {
	ExerciseName    string  `json:"exercise_name,omitempty"`
	Movement        string  `json:"movement,omitempty"`
	ExpectedGesture string  `json:"expected_gesture,omitempty"`
	Timer           float64 `json:"timer"`
}

// StreamRequest is one frame sent over the stream websocket.
type StreamRequest struct {
	Seq     int64         `json:"seq,omitempty"`
	Frame   string        `json:"frame"`
	Mode    string        `json:"mode"`
	Context StreamContext `json:"context"`
}

// StreamResponse answers a StreamRequest with the matching analysis result.
type StreamResponse struct {
	Seq     int64  `json:"seq,omitempty"`
	Mode    string `json:"mode"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Reused  bool   `json:"reused,omitempty"`
	Result  any    `json:"result,omitempty"`
}

// StreamHandler analyzes client-pushed frames over a websocket. Each message
// is analyzed on its own unless result reuse is enabled: then a frame that
// barely differs from the last analyzed frame of the same request gets that
// frame's result resent instead of running the estimator again.
type StreamHandler struct {
	service         *session.Service
	motionThreshold float64
	limiter         *middleware.RateLimiter
	log             logrus.FieldLogger
	clients         map[*websocket.Conn]bool
	mu              sync.RWMutex
}

// NewStreamHandler creates a StreamHandler. A motionThreshold of 0 disables
// result reuse. When limiter is set every message takes a token from the
// client's bucket.
func NewStreamHandler(service *session.Service, motionThreshold float64, limiter *middleware.RateLimiter, log logrus.FieldLogger) *StreamHandler {
	return &StreamHandler{
		service:         service,
		motionThreshold: motionThreshold,
		limiter:         limiter,
		log:             log,
		clients:         make(map[*websocket.Conn]bool),
	}
}

// Clients returns the number of open stream connections.
func (h *StreamHandler) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithField("request_id", middleware.GetRequestID(r.Context()))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(api.MaxBodyBytes)

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	st := &streamState{}
	if h.motionThreshold > 0 {
		st.motion = frame.NewMotionDetector(h.motionThreshold)
		defer st.motion.Close()
	}

	for {
		var req StreamRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("stream closed")
			}
			return
		}

		var resp StreamResponse
		if h.limiter != nil && !h.limiter.Allow(r) {
			resp = StreamResponse{Seq: req.Seq, Mode: req.Mode, Message: "Too many requests"}
		} else {
			resp = h.handle(st, req)
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Debug("stream write failed")
			return
		}
	}
}

// streamState is the per-connection reuse cache. The motion baseline is the
// frame last was computed from.
type streamState struct {
	motion *frame.MotionDetector
	key    string
	last   any
}

func (h *StreamHandler) handle(st *streamState, req StreamRequest) StreamResponse {
	resp := StreamResponse{Seq: req.Seq, Mode: req.Mode}

	if req.Frame == "" {
		resp.Message = "Missing frame"
		return resp
	}
	if req.Mode != ModeHand && req.Mode != ModePose {
		resp.Message = "Invalid mode"
		return resp
	}

	key := req.Mode + "|" + req.Context.ExerciseName + "|" + req.Context.Movement + "|" + req.Context.ExpectedGesture

	var mat gocv.Mat
	if st.motion != nil {
		var err error
		mat, err = frame.Decode(req.Frame)
		defer mat.Close()
		if err != nil {
			st.motion.Reset()
			st.last = nil
		} else if st.last != nil && st.key == key {
			if moved, _ := st.motion.Detect(&mat); !moved {
				resp.Success = true
				resp.Reused = true
				resp.Result = retime(st.last, req.Context.Timer)
				return resp
			}
		}
	}

	resp.Success = true
	resp.Result = h.analyze(req)
	if st.motion != nil && !mat.Empty() {
		st.motion.SetBaseline(&mat)
		st.key = key
		st.last = resp.Result
	}
	return resp
}

func (h *StreamHandler) analyze(req StreamRequest) any {
	c := req.Context
	switch req.Mode {
	case ModePose:
		switch {
		case c.ExerciseName != "":
			return h.service.ProcessFrame(session.FrameRequest{Frame: req.Frame, ExerciseName: c.ExerciseName, Timer: c.Timer})
		case c.Movement != "":
			return h.service.DetectMovement(session.MovementRequest{Frame: req.Frame, Movement: c.Movement})
		default:
			return h.service.DetectPose(session.PoseRequest{Frame: req.Frame})
		}
	default:
		if c.ExpectedGesture != "" {
			return h.service.ValidateGesture(session.ValidateRequest{Frame: req.Frame, ExpectedGesture: c.ExpectedGesture})
		}
		return h.service.DetectGesture(session.GestureRequest{Frame: req.Frame})
	}
}

// retime carries the current timer into a reused balance tick.
func retime(result any, timer float64) any {
	fr, ok := result.(session.FrameResult)
	if !ok {
		return result
	}
	fr.Timer = timer
	fr.Autoend = timer <= 0
	return fr
}
