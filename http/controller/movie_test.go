package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tnqbao/movie-catalog-service/config"
	"github.com/tnqbao/movie-catalog-service/entity"
	"github.com/tnqbao/movie-catalog-service/http/controller"
	routes "github.com/tnqbao/movie-catalog-service/http/route"
	"github.com/tnqbao/movie-catalog-service/infra"
	"github.com/tnqbao/movie-catalog-service/provider"
)

type memStore struct {
	byID map[uuid.UUID]*entity.Movie
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[uuid.UUID]*entity.Movie)}
}

func (s *memStore) add(m entity.Movie) uuid.UUID {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.NameNormalized = entity.NormalizeName(m.Name)
	s.byID[m.ID] = &m
	return m.ID
}

func (s *memStore) List(ctx context.Context, search, genre, sort string) ([]entity.Movie, error) {
	var movies []entity.Movie
	for _, m := range s.byID {
		movies = append(movies, *m)
	}
	return movies, nil
}

func (s *memStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *memStore) CountByName(ctx context.Context, name string, excludeID uuid.UUID) (int64, error) {
	var count int64
	norm := entity.NormalizeName(name)
	for id, m := range s.byID {
		if id != excludeID && m.NameNormalized == norm {
			count++
		}
	}
	return count, nil
}

func (s *memStore) Create(ctx context.Context, movie *entity.Movie) error {
	if movie.ID == uuid.Nil {
		movie.ID = uuid.New()
	}
	movie.NameNormalized = entity.NormalizeName(movie.Name)
	cp := *movie
	s.byID[movie.ID] = &cp
	return nil
}

func (s *memStore) Save(ctx context.Context, movie *entity.Movie) error {
	movie.NameNormalized = entity.NormalizeName(movie.Name)
	cp := *movie
	s.byID[movie.ID] = &cp
	return nil
}

func (s *memStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	return true, nil
}

type memBlob struct {
	uploadURL   string
	uploadCalls int
	deleteCalls []string
}

func (b *memBlob) UploadFile(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error) {
	b.uploadCalls++
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	return b.uploadURL, nil
}

func (b *memBlob) DeleteFile(ctx context.Context, fileURL string) bool {
	b.deleteCalls = append(b.deleteCalls, fileURL)
	return true
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore, *memBlob) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	blob := &memBlob{uploadURL: "http://minio.local/movie-images/generated.png"}

	cfg := &config.Config{EnvConfig: &config.EnvConfig{}}
	inf := &infra.Infra{Logger: infra.NewStdoutLogger()}
	prov := &provider.Provider{Movie: provider.NewMovieService(store, blob, inf.Logger)}
	ctrl := controller.NewController(cfg, inf, prov)

	return routes.SetupRouter(ctrl), store, blob
}

func doForm(t *testing.T, router *gin.Engine, method, path, form string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListMoviesEmpty(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/movies = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty list body = %q, want []", w.Body.String())
	}
}

func TestGetMovieByID(t *testing.T) {
	router, store, _ := newTestRouter(t)
	id := store.add(entity.Movie{Name: "Alien", Description: "d"})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET by id = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["id"] != id.String() || body["name"] != "Alien" {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["createdAt"]; !ok {
		t.Error("response missing createdAt")
	}
	if _, ok := body["genre"]; ok {
		t.Error("absent genre serialized")
	}
}

func TestGetMovieBadID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("GET with bad id = %d, want 400", w.Code)
	}
}

func TestGetMovieNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("GET missing id = %d, want 404", w.Code)
	}
}

func TestCreateMovie(t *testing.T) {
	router, store, _ := newTestRouter(t)

	w := doForm(t, router, http.MethodPost, "/api/movies", "name=Alien&description=A+xenomorph+hunts+the+crew&genre=Horror&rating=5")
	if w.Code != http.StatusCreated {
		t.Fatalf("POST = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["name"] != "Alien" || body["genre"] != "Horror" || body["rating"] != float64(5) {
		t.Errorf("body = %v", body)
	}
	if len(store.byID) != 1 {
		t.Errorf("store holds %d records, want 1", len(store.byID))
	}
}

func TestCreateMovieValidation(t *testing.T) {
	tests := []struct {
		name string
		form string
	}{
		{"missing name", "description=d"},
		{"missing description", "name=Alien"},
		{"rating zero", "name=Alien&description=d&rating=0"},
		{"rating six", "name=Alien&description=d&rating=6"},
		{"description too long", "name=Alien&description=" + strings.Repeat("x", 2001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store, _ := newTestRouter(t)

			w := doForm(t, router, http.MethodPost, "/api/movies", tt.form)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("POST = %d, want 400; body: %s", w.Code, w.Body.String())
			}
			if len(store.byID) != 0 {
				t.Errorf("invalid input was persisted")
			}
		})
	}
}

func TestCreateMovieConflict(t *testing.T) {
	router, store, _ := newTestRouter(t)
	store.add(entity.Movie{Name: "Alien", Description: "d"})

	w := doForm(t, router, http.MethodPost, "/api/movies", "name=alien&description=lowercase+duplicate")
	if w.Code != http.StatusConflict {
		t.Fatalf("POST duplicate = %d, want 409; body: %s", w.Code, w.Body.String())
	}
	if len(store.byID) != 1 {
		t.Errorf("store holds %d records after conflict, want 1", len(store.byID))
	}
}

func TestCreateMovieFileWinsOverURL(t *testing.T) {
	router, _, blob := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", "Alien")
	_ = mw.WriteField("description", "d")
	_ = mw.WriteField("imageUrl", "https://example.com/ignored.jpg")
	fw, err := mw.CreateFormFile("image", "poster.png")
	if err != nil {
		t.Fatalf("CreateFormFile() failed: %v", err)
	}
	if _, err := fw.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/movies", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("POST multipart = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["imageUrl"] != blob.uploadURL {
		t.Errorf("imageUrl = %v, want the uploaded reference %q", body["imageUrl"], blob.uploadURL)
	}
	if blob.uploadCalls != 1 {
		t.Errorf("upload called %d times, want 1", blob.uploadCalls)
	}
}

func TestUpdateMovie(t *testing.T) {
	router, store, _ := newTestRouter(t)
	id := store.add(entity.Movie{Name: "Alien", Description: "d"})

	w := doForm(t, router, http.MethodPut, "/api/movies/"+id.String(), "name=Aliens&description=sequel")
	if w.Code != http.StatusOK {
		t.Fatalf("PUT = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["name"] != "Aliens" || body["description"] != "sequel" {
		t.Errorf("body = %v", body)
	}
}

func TestUpdateMovieNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doForm(t, router, http.MethodPut, "/api/movies/"+uuid.NewString(), "name=Aliens&description=d")
	if w.Code != http.StatusNotFound {
		t.Fatalf("PUT missing id = %d, want 404; body: %s", w.Code, w.Body.String())
	}
}

func TestDeleteMovie(t *testing.T) {
	router, store, _ := newTestRouter(t)
	id := store.add(entity.Movie{Name: "Alien", Description: "d"})

	req := httptest.NewRequest(http.MethodDelete, "/api/movies/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("DELETE = %d, want 200", w.Code)
	}
	if len(store.byID) != 0 {
		t.Errorf("record still present after delete")
	}

	// A second delete hits a missing record.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/movies/"+id.String(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second DELETE = %d, want 404", w.Code)
	}
}
