package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/auth"
	handler "github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/pantry-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/router"
	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
	"github.com/rogerio-castellano/pantry-tracker/internal/metrics"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/recipes"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	token       string
	itemRepo    *repo.InMemoryItemRepository
	itemStore   *inventory.Store
	tokens      *auth.Tokens
	visitors    *rl.Visitors
	testMetrics *metrics.Metrics
	generator   = &fakeGenerator{}
)

func init() {
	setupTestRepos("secret")
	r := newRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	testMetrics = metrics.New()

	itemRepo = repo.NewInMemoryItemRepository()
	itemStore = inventory.NewStore(itemRepo, inventory.NewLocalFeed(), zap.NewNop(), inventory.WithMetrics(testMetrics))
	handler.SetStore(itemStore)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	_, _ = userRepo.CreateUser(context.Background(), models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	tokens = auth.NewTokens("test-secret", 15*time.Minute)
	handler.SetTokens(tokens)

	handler.SetRecipeService(recipes.NewService(generator, zap.NewNop(), testMetrics))
	visitors = rl.NewVisitors(1, 3, time.Minute)
}

func newRouter() http.Handler {
	return router.NewRouter(router.Dependencies{
		Tokens:   tokens,
		Visitors: visitors,
		Metrics:  testMetrics,
	})
}

func clearAllItems() {
	itemRepo.Clear()
	_, _ = itemStore.Refresh(context.Background())
}

// fakeGenerator stands in for the text-generation service.
type fakeGenerator struct {
	mu    sync.Mutex
	out   string
	err   error
	calls int
}

func (g *fakeGenerator) set(out string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.out, g.err, g.calls = out, err, 0
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.out, g.err
}

// downItemRepo fails every call, like an unreachable database.
type downItemRepo struct{}

var errDown = errors.New("connection refused")

func (downItemRepo) Insert(context.Context, models.Item) (models.Item, error) {
	return models.Item{}, errDown
}
func (downItemRepo) GetByID(context.Context, string) (models.Item, error) {
	return models.Item{}, errDown
}
func (downItemRepo) List(context.Context) (models.Snapshot, error) { return nil, errDown }
func (downItemRepo) UpdateQuantity(context.Context, string, int) error { return errDown }
func (downItemRepo) Delete(context.Context, string) error              { return errDown }

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createItem(r http.Handler, it handler.ItemRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/items", it)
}

func mustCreateItem(r http.Handler, it handler.ItemRequest) (string, error) {
	w := createItem(r, it)
	if w.Code != http.StatusAccepted {
		return "", fmt.Errorf("create %q: status %d: %s", it.Name, w.Code, w.Body.String())
	}
	var resp handler.ItemCreatedResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func listItems(r http.Handler, query string) (handler.ItemsSearchResult, int) {
	w := doJSON(r, http.MethodGet, "/items"+query, nil)
	var resp handler.ItemsSearchResult
	if w.Code == http.StatusOK {
		_ = json.NewDecoder(w.Body).Decode(&resp)
	}
	return resp, w.Code
}

func quantityOf(r http.Handler, id string) int {
	res, _ := listItems(r, "")
	for _, it := range res.Data {
		if it.ID == id {
			return it.Quantity
		}
	}
	return -1
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	_, _ = part.Write([]byte(csvContent))

	_ = writer.Close()
	return &buf, writer.FormDataContentType()
}

func newUnauthenticatedRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
