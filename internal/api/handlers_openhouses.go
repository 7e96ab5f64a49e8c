package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"openhouse/internal/domain"
	"openhouse/internal/parser"
	"openhouse/internal/storage"
)

func (s *Server) handleListOpenHouses(w http.ResponseWriter, r *http.Request) {
	houses, err := s.pgStore.ListOpenHouses(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.logger.Error("failed to list open houses", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to fetch open houses")
		return
	}
	s.respondWithJSON(w, http.StatusOK, houses)
}

func (s *Server) handleGetOpenHouse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	house, err := s.pgStore.GetOpenHouse(r.Context(), userIDFrom(r.Context()), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondWithError(w, http.StatusNotFound, "Open house not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get open house", zap.Int("id", id), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to fetch open house")
		return
	}
	s.respondWithJSON(w, http.StatusOK, house)
}

func (s *Server) handleCreateOpenHouse(w http.ResponseWriter, r *http.Request) {
	var house domain.OpenHouse
	if err := json.NewDecoder(r.Body).Decode(&house); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if strings.TrimSpace(house.Address) == "" {
		s.respondWithError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	house.UserID = userIDFrom(r.Context())

	created, err := s.pgStore.CreateOpenHouse(r.Context(), &house)
	if err != nil {
		s.logger.Error("failed to create open house", zap.Error(err))
		s.metrics.IncErrorsTotal("db_save_failed")
		s.respondWithError(w, http.StatusInternalServerError, "Failed to create open house")
		return
	}
	s.respondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateOpenHouse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var update domain.OpenHouseUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	house, err := s.pgStore.UpdateOpenHouse(r.Context(), userIDFrom(r.Context()), id, &update)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondWithError(w, http.StatusNotFound, "Open house not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to update open house", zap.Int("id", id), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to update open house")
		return
	}
	s.respondWithJSON(w, http.StatusOK, house)
}

func (s *Server) handleDeleteOpenHouse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	deleted, err := s.pgStore.DeleteOpenHouse(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		s.logger.Error("failed to delete open house", zap.Int("id", id), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to delete open house")
		return
	}
	if !deleted {
		s.respondWithError(w, http.StatusNotFound, "Open house not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	today := parser.LocalISODate(now)
	weekEnd := parser.LocalISODate(now.AddDate(0, 0, 7))
	nextWeekEnd := parser.LocalISODate(now.AddDate(0, 0, 14))

	stats, err := s.pgStore.GetStats(r.Context(), userIDFrom(r.Context()), today, weekEnd, nextWeekEnd)
	if err != nil {
		s.logger.Error("failed to fetch stats", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	s.respondWithJSON(w, http.StatusOK, stats)
}
