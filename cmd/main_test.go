package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/auditplan/internal/app"
	"github.com/okian/auditplan/internal/config"
	"github.com/okian/auditplan/pkg/logger"
)

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the server wired over the sample data", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.EngagementsPath = "../data/engagements_sample.csv"
		cfg.StaffPath = "../data/staff_sample.csv"

		svc, err := app.Bootstrap(ctx, cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		h := newHandler(ctx, cfg, svc)

		convey.Convey("When posting an estimate", func() {
			req := httptest.NewRequest(http.MethodPost, "/estimate",
				strings.NewReader(`{"industry":"Retail","size":"Medium","complexity":"Medium","prev_issues":1}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.Convey("Then it succeeds and carries a request id", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"suggested_team"`)
				convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When reading every GET route", func() {
			for _, path := range []string{"/openapi.yaml", "/api-docs", "/healthz", "/reference", "/model", "/staff/ranking"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given metrics settings", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When the labels are well formed", func() {
			cfg.MetricsLabels = []string{"env=prod"}
			opts, err := metricsOptions(cfg)

			convey.Convey("Then every setting becomes an option", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(opts), convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When a label is malformed", func() {
			cfg.MetricsLabels = []string{"env"}
			_, err := metricsOptions(cfg)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
