package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/model"
	"github.com/m-ovsyannikov/promisetrack/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Auth ---

type loginRequest struct {
	InitData string `json:"initData"`
}

type userPayload struct {
	ID         int64   `json:"id"`
	TelegramID int64   `json:"telegram_id"`
	Username   *string `json:"username"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	PhotoURL   *string `json:"photo_url"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errs.ErrValidation))
		return
	}

	token, u, err := s.auth.Login(r.Context(), req.InitData)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		User: userPayload{
			ID:         u.ID,
			TelegramID: u.TelegramID,
			Username:   u.Username,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			PhotoURL:   u.PhotoURL,
		},
	})
}

// --- Promises ---

type createPromiseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Category    string `json:"category"`
	IsPublic    *bool  `json:"is_public"`
}

type updatePromiseRequest struct {
	ID       int64   `json:"id"`
	Status   *string `json:"status"`
	Progress *int    `json:"progress"`
}

// parseDeadline accepts RFC 3339 timestamps or bare dates from the picker.
func parseDeadline(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid deadline", errs.ErrValidation)
	}
	return t, nil
}

func (s *Server) handleListPromises(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, errUnauthorizedHeader)
		return
	}

	promises, err := s.promises.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if promises == nil {
		promises = []model.Promise{}
	}
	writeJSON(w, http.StatusOK, promises)
}

func (s *Server) handleCreatePromise(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, errUnauthorizedHeader)
		return
	}

	var req createPromiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errs.ErrValidation))
		return
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := s.promises.Create(r.Context(), userID, service.CreatePromise{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Category:    req.Category,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePromise(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, errUnauthorizedHeader)
		return
	}

	var req updatePromiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errs.ErrValidation))
		return
	}

	p, err := s.promises.Update(r.Context(), userID, service.UpdatePromise{
		ID:       req.ID,
		Status:   req.Status,
		Progress: req.Progress,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- Feed ---

type feedActivity struct {
	ID        int64        `json:"id"`
	Type      string       `json:"type"`
	CreatedAt string       `json:"created_at"`
	User      feedUser     `json:"user"`
	Promise   *feedPromise `json:"promise"`
}

type feedUser struct {
	ID        int64   `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	PhotoURL  *string `json:"photo_url"`
}

type feedPromise struct {
	ID       int64   `json:"id"`
	Title    *string `json:"title"`
	Category *string `json:"category"`
}

type feedResponse struct {
	Activities []feedActivity `json:"activities"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
	Count      int            `json:"count"`
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, limit, offset, err := s.feed.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	activities := make([]feedActivity, 0, len(entries))
	for _, e := range entries {
		a := feedActivity{
			ID:        e.ID,
			Type:      e.Type,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
			User: feedUser{
				ID:        e.UserID,
				FirstName: e.UserFirstName,
				LastName:  e.UserLastName,
				Username:  e.UserUsername,
				PhotoURL:  e.UserPhotoURL,
			},
		}
		if e.PromiseID != nil {
			a.Promise = &feedPromise{ID: *e.PromiseID, Title: e.PromiseTitle, Category: e.PromiseCategory}
		}
		activities = append(activities, a)
	}

	writeJSON(w, http.StatusOK, feedResponse{
		Activities: activities,
		Limit:      limit,
		Offset:     offset,
		Count:      len(activities),
	})
}
