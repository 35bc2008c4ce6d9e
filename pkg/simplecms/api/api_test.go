package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
	"github.com/tendant/simple-cms/pkg/simplecms/core"
	"github.com/tendant/simple-cms/pkg/simplecms/event"
	"github.com/tendant/simple-cms/pkg/simplecms/seed"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, err := core.New(
		core.WithStore(memory.New()),
		core.WithLogger(logger),
		core.WithPasswordCost(bcrypt.MinCost),
	)
	require.NoError(t, err)

	install, err := seed.Install()
	require.NoError(t, err)
	_, err = seed.NewApplier(repo, logger).Apply(context.Background(), install)
	require.NoError(t, err)

	decorated := event.Decorate(repo, event.NewBus())
	return api.New(decorated, api.NewAuth(secret), api.WithLogger(logger)).Routes()
}

func request(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := request(t, h, http.MethodPost, "/auth/token", "", api.TokenRequest{Login: "admin", Password: "publish"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[api.TokenResponse](t, rr).Token
}

func TestCreateToken(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"Valid", api.TokenRequest{Login: "admin", Password: "publish"}, http.StatusCreated},
		{"WrongPassword", api.TokenRequest{Login: "admin", Password: "nope"}, http.StatusUnauthorized},
		{"UnknownUser", api.TokenRequest{Login: "ghost", Password: "publish"}, http.StatusUnauthorized},
		{"DisabledUser", api.TokenRequest{Login: "anonymous", Password: "anonymous"}, http.StatusUnauthorized},
		{"MissingPassword", api.TokenRequest{Login: "admin"}, http.StatusBadRequest},
		{"NotJSON", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := request(t, h, http.MethodPost, "/auth/token", "", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusCreated {
				resp := decodeBody[api.TokenResponse](t, rr)
				assert.NotEmpty(t, resp.Token)
				assert.NotZero(t, resp.UserID)
				return
			}
			resp := decodeBody[api.ErrorResponse](t, rr)
			assert.NotEmpty(t, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}
}

func TestAuthentication(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	_, other, err := api.NewAuth("another-secret").Encode(map[string]interface{}{"sub": "14"})
	require.NoError(t, err)

	t.Run("AnonymousUser", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/user", "", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "anonymous", decodeBody[api.UserResponse](t, rr).Login)
	})

	t.Run("TokenUser", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/user", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		user := decodeBody[api.UserResponse](t, rr)
		assert.Equal(t, "admin", user.Login)
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("MalformedToken", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/user", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("ForeignSignature", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/user", other, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("AnonymousCannotCreate", func(t *testing.T) {
		rr := request(t, h, http.MethodPost, "/content", "", api.CreateContentRequest{
			ContentType: "folder",
			Fields:      map[string]any{"name": "Nope"},
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("AnonymousReadsPublicContent", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/content/remote/home", "", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		content := decodeBody[simplecms.Content](t, rr)
		assert.Equal(t, "Home", content.VersionInfo.ContentInfo.Name)
	})

	t.Run("RequestIDEchoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sections", nil)
		req.Header.Set("X-Request-ID", "req-42")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
	})
}

func TestContentLifecycle(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	rr := request(t, h, http.MethodGet, "/content/remote/home", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	home := decodeBody[simplecms.Content](t, rr).VersionInfo.ContentInfo

	rr = request(t, h, http.MethodPost, "/content", token, api.CreateContentRequest{
		ContentType:      "article",
		ParentLocationID: home.MainLocationID,
		RemoteID:         "launch",
		Fields:           map[string]any{"title": "Launch Day"},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	draft := decodeBody[simplecms.Content](t, rr)
	assert.True(t, draft.VersionInfo.IsDraft())
	id := strconv.FormatInt(draft.ID(), 10)

	rr = request(t, h, http.MethodPatch, "/content/"+id+"/versions/1", token, api.UpdateVersionRequest{
		Fields: map[string]any{"intro": "We are live."},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = request(t, h, http.MethodPost, "/content/"+id+"/versions/1/publish", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	published := decodeBody[simplecms.Content](t, rr)
	assert.True(t, published.VersionInfo.IsPublished())

	rr = request(t, h, http.MethodGet, "/content/"+id, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	info := decodeBody[simplecms.Content](t, rr).VersionInfo.ContentInfo
	require.NotZero(t, info.MainLocationID)
	locationID := strconv.FormatInt(info.MainLocationID, 10)

	t.Run("Search", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/search?type=article&subtree="+strconv.FormatInt(home.MainLocationID, 10), token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		result := decodeBody[simplecms.SearchResult[*simplecms.Content]](t, rr)
		require.Equal(t, 1, result.TotalCount)
		assert.Equal(t, draft.ID(), result.Items[0].ID())

		rr = request(t, h, http.MethodGet, "/search?q=launch*&locations=true", token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		locations := decodeBody[simplecms.SearchResult[*simplecms.Location]](t, rr)
		require.Equal(t, 1, locations.TotalCount)
		assert.Equal(t, info.MainLocationID, locations.Items[0].ID)
	})

	t.Run("URLAlias", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/url-aliases/lookup?url=/home/launch-day", token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, info.MainLocationID, decodeBody[simplecms.URLAlias](t, rr).LocationID)
	})

	t.Run("Versions", func(t *testing.T) {
		rr := request(t, h, http.MethodPost, "/content/"+id+"/drafts", token, nil)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.Equal(t, 2, decodeBody[simplecms.Content](t, rr).VersionInfo.VersionNo)

		rr = request(t, h, http.MethodGet, "/content/"+id+"/versions", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody[[]*simplecms.VersionInfo](t, rr), 2)
	})

	t.Run("TrashAndRestore", func(t *testing.T) {
		rr := request(t, h, http.MethodPost, "/locations/"+locationID+"/trash", token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		trashed := decodeBody[api.TrashResponse](t, rr)
		require.NotNil(t, trashed.Item)

		rr = request(t, h, http.MethodGet, "/trash", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, decodeBody[simplecms.TrashItemList](t, rr).TotalCount)

		rr = request(t, h, http.MethodPost, "/trash/"+strconv.FormatInt(trashed.Item.ID, 10)+"/restore", token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		restored := decodeBody[simplecms.Location](t, rr)
		assert.Equal(t, home.MainLocationID, restored.ParentLocationID)
	})

	t.Run("Delete", func(t *testing.T) {
		rr := request(t, h, http.MethodDelete, "/content/"+id, token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Len(t, decodeBody[api.DeleteContentResponse](t, rr).LocationIDs, 1)

		rr = request(t, h, http.MethodGet, "/content/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "not_found", decodeBody[api.ErrorResponse](t, rr).Error.Code)
	})
}

func TestErrorMapping(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"MissingContent", http.MethodGet, "/content/9999", nil, http.StatusNotFound, "not_found"},
		{"BadID", http.MethodGet, "/locations/abc", nil, http.StatusBadRequest, "bad_request"},
		{"UnknownContentType", http.MethodGet, "/content-types/blog_post", nil, http.StatusNotFound, "not_found"},
		{"BadSortOrder", http.MethodGet, "/search?sort=content_name&order=sideways", nil, http.StatusBadRequest, "invalid_argument"},
		{"UnknownSortTarget", http.MethodGet, "/search?sort=popularity", nil, http.StatusNotImplemented, "not_implemented"},
		{
			name:       "MissingRequiredField",
			method:     http.MethodPost,
			path:       "/content",
			body:       api.CreateContentRequest{ContentType: "article", Fields: map[string]any{"intro": "no title"}, Publish: true},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
		},
		{
			name:       "DuplicateSection",
			method:     http.MethodPost,
			path:       "/sections",
			body:       simplecms.SectionCreateStruct{Identifier: "standard", Name: "Standard"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_argument",
		},
		{"UnaliasedURL", http.MethodGet, "/url-aliases/lookup?url=/nowhere", nil, http.StatusNotFound, "not_found"},
		{"NegativeChildrenOffset", http.MethodGet, "/locations/1/children?offset=-1", nil, http.StatusBadRequest, "invalid_argument"},
		{"NegativeChildrenLimit", http.MethodGet, "/locations/1/children?limit=-5", nil, http.StatusBadRequest, "invalid_argument"},
		{"NegativeTrashLimit", http.MethodGet, "/trash?limit=-1", nil, http.StatusBadRequest, "invalid_argument"},
		{"NonNumericNotificationOffset", http.MethodGet, "/notifications?offset=first", nil, http.StatusBadRequest, "invalid_argument"},
		{"NegativeSearchOffset", http.MethodGet, "/search?offset=-2", nil, http.StatusBadRequest, "invalid_argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := request(t, h, tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, tt.wantCode, decodeBody[api.ErrorResponse](t, rr).Error.Code)
		})
	}
}

func TestListings(t *testing.T) {
	h := setupRouter(t)
	token := login(t, h)

	t.Run("Sections", func(t *testing.T) {
		rr := request(t, h, http.MethodPost, "/sections", token, simplecms.SectionCreateStruct{Identifier: "archive", Name: "Archive"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = request(t, h, http.MethodGet, "/sections", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody[[]*simplecms.Section](t, rr), 4)
	})

	t.Run("ContentTypes", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/content-types", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody[[]*simplecms.ContentType](t, rr), 3)

		rr = request(t, h, http.MethodGet, "/content-types?group=Media", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		types := decodeBody[[]*simplecms.ContentType](t, rr)
		require.Len(t, types, 1)
		assert.Equal(t, "file", types[0].Identifier)
	})

	t.Run("Children", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/locations/1/children", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2, decodeBody[simplecms.LocationList](t, rr).TotalCount)

		rr = request(t, h, http.MethodGet, "/locations/1/children?offset=1&limit=9223372036854775807", token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		list := decodeBody[simplecms.LocationList](t, rr)
		assert.Equal(t, 2, list.TotalCount)
		assert.Len(t, list.Locations, 1)
	})

	t.Run("Notifications", func(t *testing.T) {
		rr := request(t, h, http.MethodGet, "/notifications/count", token, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, api.CountResponse{}, decodeBody[api.CountResponse](t, rr))
	})
}
