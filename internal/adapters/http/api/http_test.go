package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/auditplan/internal/adapters/http/api"
	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/pkg/logger"
)

type mockDependencies struct {
	lastRequest model.RawRequest
	estimateErr error
	ranking     []model.RankedStaff
	lastLimit   int
	hours       float64
}

func (m *mockDependencies) Estimate(_ context.Context, req model.RawRequest) (model.Result, error) {
	m.lastRequest = req
	if m.estimateErr != nil {
		return model.Result{}, m.estimateErr
	}
	hours := 100.0
	if m.hours != 0 {
		hours = m.hours
	}
	return model.Result{
		EstimatedHours:   hours,
		BaseWeeks:        1,
		AddDelay:         req.AddDelay,
		RecommendedWeeks: 1 + req.AddDelay,
		StaffRanking:     m.ranking,
		SuggestedTeam:    m.ranking,
		ScenarioNote:     "note",
	}, nil
}

func (m *mockDependencies) Ranking(_ context.Context, limit int) []model.RankedStaff {
	m.lastLimit = limit
	if limit > len(m.ranking) {
		return m.ranking
	}
	return m.ranking[:limit]
}

func (m *mockDependencies) StaffRank(_ context.Context, id string) (model.RankedStaff, error) {
	for _, r := range m.ranking {
		if r.StaffID == id {
			return r, nil
		}
	}
	return model.RankedStaff{}, fmt.Errorf("staff %q: %w", id, model.ErrStaffNotFound)
}

func (m *mockDependencies) Summary(context.Context) model.ReferenceSummary {
	return model.ReferenceSummary{Industries: []string{"Retail"}, Engagements: 2, Staff: len(m.ranking)}
}

func (m *mockDependencies) Model(context.Context) model.ModelSummary {
	return model.ModelSummary{
		Coefficients: []model.Coefficient{{Feature: "intercept", Value: 100}},
		TrainedOn:    2,
	}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, 10).Register(context.Background(), mux)
	return mux
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func sampleRanking() []model.RankedStaff {
	return []model.RankedStaff{
		{Rank: 1, StaffID: "1", Name: "Ana", Level: model.LevelSenior, Skills: []string{"Audit", "Tax"}, AvailableHoursPerWeek: 40, Score: 6},
		{Rank: 2, StaffID: "2", Name: "Ben", Level: model.LevelJunior, Skills: []string{"Tax"}, AvailableHoursPerWeek: 20, Score: 1.5},
	}
}

func TestMain(m *testing.M) {
	_ = logger.InitWithWriter(new(strings.Builder), logger.FormatJSON)
	m.Run()
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(&mockDependencies{ranking: sampleRanking()})

		Convey("Then the health endpoint serves metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then the reference endpoint returns the summary", func() {
			w := do(mux, http.MethodGet, "/reference", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var sum model.ReferenceSummary
			So(json.Unmarshal(w.Body.Bytes(), &sum), ShouldBeNil)
			So(sum.Industries, ShouldResemble, []string{"Retail"})
			So(sum.Staff, ShouldEqual, 2)
		})

		Convey("Then the model endpoint returns coefficients", func() {
			w := do(mux, http.MethodGet, "/model", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"feature":"intercept"`)
		})

		Convey("Then read endpoints reject other methods", func() {
			So(do(mux, http.MethodPost, "/reference", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodDelete, "/staff/1", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestEstimateHandler(t *testing.T) {
	Convey("Given the estimate endpoint", t, func() {
		deps := &mockDependencies{ranking: sampleRanking()}
		mux := newMux(deps)

		Convey("When posting a valid request", func() {
			w := do(mux, http.MethodPost, "/estimate",
				`{"industry":"Retail","size":"Small","complexity":"Low","prev_issues":0,"add_delay":2}`)

			Convey("Then the result is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")

				var res model.Result
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.EstimatedHours, ShouldEqual, 100)
				So(res.RecommendedWeeks, ShouldEqual, 3)
				So(len(res.SuggestedTeam), ShouldEqual, 2)
				So(res.SuggestedTeam[0].Skills, ShouldResemble, []string{"Audit", "Tax"})
			})

			Convey("And the request reaches the service untouched", func() {
				So(deps.lastRequest, ShouldResemble, model.RawRequest{
					Industry: "Retail", Size: "Small", Complexity: "Low", PrevIssues: 0, AddDelay: 2,
				})
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/estimate", `{not json`)

			Convey("Then it responds 400 bad_request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the body has unknown fields", func() {
			w := do(mux, http.MethodPost, "/estimate", `{"industry":"Retail","colour":"red"}`)

			Convey("Then it responds 400 bad_request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the service reports an unknown category", func() {
			deps.estimateErr = fmt.Errorf("industry %q: %w", "Nonexistent", model.ErrUnknownCategory)
			w := do(mux, http.MethodPost, "/estimate", `{"industry":"Nonexistent","size":"Small","complexity":"Low"}`)

			Convey("Then it responds 400 unknown_category", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "unknown_category")
				So(decodeError(w)["message"], ShouldContainSubstring, "Nonexistent")
			})
		})

		Convey("When the service reports invalid input", func() {
			deps.estimateErr = fmt.Errorf("prev_issues -1: %w", model.ErrInvalidInput)
			w := do(mux, http.MethodPost, "/estimate", `{"industry":"Retail","size":"Small","complexity":"Low","prev_issues":-1}`)

			Convey("Then it responds 400 invalid_input", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "invalid_input")
			})
		})

		Convey("When the service fails unexpectedly", func() {
			deps.estimateErr = errors.New("matrix exploded")
			w := do(mux, http.MethodPost, "/estimate", `{"industry":"Retail","size":"Small","complexity":"Low"}`)

			Convey("Then it responds 500 without leaking detail", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w)["code"], ShouldEqual, "internal")
				So(w.Body.String(), ShouldNotContainSubstring, "matrix")
			})
		})

		Convey("When the result cannot be encoded", func() {
			deps.hours = math.NaN()
			w := do(mux, http.MethodPost, "/estimate", `{"industry":"Retail","size":"Small","complexity":"Low"}`)

			Convey("Then it responds 500 instead of an empty success", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w)["code"], ShouldEqual, "internal")
			})
		})

		Convey("When using GET", func() {
			w := do(mux, http.MethodGet, "/estimate", "")

			Convey("Then it responds 405", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
			})
		})
	})
}

func TestRankingHandler(t *testing.T) {
	Convey("Given the ranking endpoint with a limit cap of 10", t, func() {
		deps := &mockDependencies{ranking: sampleRanking()}
		mux := newMux(deps)

		Convey("When asking for one entry", func() {
			w := do(mux, http.MethodGet, "/staff/ranking?limit=1", "")

			Convey("Then only the leader is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []model.RankedStaff
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].StaffID, ShouldEqual, "1")
			})
		})

		Convey("When no limit is given", func() {
			w := do(mux, http.MethodGet, "/staff/ranking", "")

			Convey("Then the cap is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 10)
			})
		})

		Convey("When the limit is invalid", func() {
			for _, q := range []string{"0", "-3", "abc"} {
				w := do(mux, http.MethodGet, "/staff/ranking?limit="+q, "")
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
			}
		})

		Convey("When the limit exceeds the cap", func() {
			w := do(mux, http.MethodGet, "/staff/ranking?limit=11", "")

			Convey("Then it responds 400 limit_exceeded", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "limit_exceeded")
			})
		})
	})
}

func TestStaffHandler(t *testing.T) {
	Convey("Given the staff endpoint", t, func() {
		mux := newMux(&mockDependencies{ranking: sampleRanking()})

		Convey("When looking up a known member", func() {
			w := do(mux, http.MethodGet, "/staff/2", "")

			Convey("Then the ranked entry is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got model.RankedStaff
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Rank, ShouldEqual, 2)
				So(got.Score, ShouldEqual, 1.5)
			})
		})

		Convey("When looking up an unknown member", func() {
			w := do(mux, http.MethodGet, "/staff/nobody", "")

			Convey("Then it responds 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(w)["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When the id is missing or nested", func() {
			So(do(mux, http.MethodGet, "/staff/", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodGet, "/staff/a/b", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
		}))

		Convey("When the caller sends an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is propagated to the context and echoed", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the caller sends none", func() {
			w := do(h, http.MethodGet, "/", "")

			Convey("Then a uuid is generated", func() {
				So(len(seen), ShouldEqual, 36)
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
			})
		})
	})
}
