package controller

import (
	"bytes"
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/api/models"
	"ctchen222/perfect-tic-tac-toe/internal/api/service"
	"ctchen222/perfect-tic-tac-toe/internal/api/service/mocks"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/repository"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newGameRouter(svc service.GameService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gc := NewGameController(svc)

	r := gin.New()
	r.POST("/games", gc.Record)
	r.GET("/games", gc.List)
	r.GET("/games/:id", gc.Get)
	r.GET("/stats", gc.Stats)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGameController_RecordErrors(t *testing.T) {
	body := `{"moves":[{"row":0,"col":0},{"row":1,"col":0},{"row":0,"col":1},{"row":1,"col":1},{"row":2,"col":2}]}`

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"Unfinished game", service.ErrGameNotFinished, http.StatusUnprocessableEntity},
		{"Illegal move", game.ErrIllegalMove, http.StatusUnprocessableEntity},
		{"Storage failure", errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockGameService(ctrl)
			svc.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := serve(newGameRouter(svc), http.MethodPost, "/games", body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestGameController_RecordBindsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGameService(ctrl)
	svc.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *models.RecordGameRequest) (*repository.GameRecord, error) {
			assert.Len(t, req.Moves, 5)
			assert.Equal(t, "bot:hard", req.PlayerO)
			return &repository.GameRecord{ID: "g1", Result: game.Draw}, nil
		})

	body := `{"moves":[{"row":0,"col":0},{"row":1,"col":0},{"row":0,"col":1},{"row":1,"col":1},{"row":2,"col":2}],"player_o":"bot:hard"}`
	w := serve(newGameRouter(svc), http.MethodPost, "/games", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"g1"`)
}

func TestGameController_RecordTooFewMoves(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGameService(ctrl)
	svc.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	w := serve(newGameRouter(svc), http.MethodPost, "/games", `{"moves":[{"row":0,"col":0}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameController_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGameService(ctrl)
	svc.EXPECT().Get(gomock.Any(), "g1").Return(&repository.GameRecord{ID: "g1"}, nil)
	svc.EXPECT().Get(gomock.Any(), "nope").Return(nil, repository.ErrGameNotFound)

	r := newGameRouter(svc)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/games/g1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/games/nope", "").Code)
}

func TestGameController_ListAndStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGameService(ctrl)
	svc.EXPECT().List(gomock.Any(), 0).Return(nil, nil)
	svc.EXPECT().Stats(gomock.Any()).Return(repository.Stats{Total: 3, OWins: 3}, nil)

	r := newGameRouter(svc)

	w := serve(r, http.MethodGet, "/games", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"list":[]`)

	w = serve(r, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"o_wins":3`)
}
