package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, http.NoBody))
	return w
}

func TestRegister(t *testing.T) {
	convey.Convey("Given a mux with the docs routes", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		convey.Convey("When the OpenAPI document is fetched", func() {
			w := serve(mux, http.MethodGet, DocumentPath)

			convey.Convey("Then the embedded YAML describes the dashboard API", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				body := w.Body.String()
				convey.So(body, convey.ShouldStartWith, "openapi: 3.0.3")
				for _, route := range []string{"/api/filters:", "/api/summary:", "/api/matches:", "/api/countries:", "/api/export:"} {
					convey.So(body, convey.ShouldContainSubstring, route)
				}
			})
		})

		convey.Convey("When the docs page is fetched", func() {
			w := serve(mux, http.MethodGet, DocsPath)

			convey.Convey("Then ReDoc is pointed at the document", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, RedocURL)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Redoc.init('/openapi.yaml'")
			})
		})

		convey.Convey("When HEAD is used", func() {
			w := serve(mux, http.MethodHead, DocumentPath)

			convey.Convey("Then headers are sent without a body", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Length"), convey.ShouldNotBeEmpty)
				convey.So(w.Body.Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When a write method is used", func() {
			convey.Convey("Then the route is not found", func() {
				convey.So(serve(mux, http.MethodPost, DocsPath).Code, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})

	convey.Convey("Given a nil mux", t, func() {
		convey.So(func() { Register(context.Background(), nil) }, convey.ShouldPanic)
	})
}
