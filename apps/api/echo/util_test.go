package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mtihani/core"
	"github.com/trezcool/mtihani/core/catalog"
	"github.com/trezcool/mtihani/core/quiz"
	emailsvc "github.com/trezcool/mtihani/services/email"
	"github.com/trezcool/mtihani/storage/jsondb"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func setup(t *testing.T) (Server, *catalog.Service) {
	conf := &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Mtihani",
		WorkDir:          filepath.Join("..", "..", ".."), // repo root, where assets/ lives
		DefaultFromEmail: mail.Address{Name: "Mtihani", Address: "noreply@localhost"},
		FrontendBaseURL:  "http://localhost:3000",
	}
	core.ParseEmailTemplates(conf, nopLogger{})

	db, err := jsondb.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("setup() failed, %v", err)
	}
	catalogSvc, err := catalog.NewService(db, emailsvc.NewConsoleServiceMock(conf))
	if err != nil {
		t.Fatalf("setup() failed, %v", err)
	}

	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     nopLogger{},
		CatalogSvc: catalogSvc,
		QuizSvc:    quiz.NewService(catalogSvc),
	})
	return srv, catalogSvc
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return req, rec
}

func do(srv Server, tt httpTest) *httptest.ResponseRecorder {
	req, rec := newRequest(tt.method, tt.path, tt.body)
	srv.ServeHTTP(rec, req)
	return rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed, %v", err)
	}
	return data
}

// successData wraps obj in the success envelope.
func successData(t *testing.T, obj interface{}) []byte {
	return marshalObj(t, echo.Map{"success": true, "data": obj})
}

// errorData wraps msg (a string or a field->error map) in the error envelope.
func errorData(t *testing.T, msg interface{}) []byte {
	return marshalObj(t, echo.Map{"success": false, "error": msg})
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// decodeData unmarshals the `data` part of a success envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decodeData() failed, %v", err)
	}
	if !envelope.Success {
		t.Fatalf("decodeData() expected a success envelope, got %s", rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decodeData() failed, %v", err)
	}
}
