package service_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/auditplan/internal/adapters/loader"
	service "github.com/okian/auditplan/internal/app"
	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/pkg/logger"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given the bundled sample data", t, func() {
		ctx := context.Background()
		ref, err := loader.Load(ctx,
			loader.NewFileSource("../../data/engagements_sample.csv", "../../data/staff_sample.csv"),
			loader.WithLogger(logger.Nop()),
		)
		So(err, ShouldBeNil)

		svc, err := service.New(ctx, ref, service.WithLogger(logger.Nop()))
		So(err, ShouldBeNil)

		Convey("When estimating every industry in the history", func() {
			for _, industry := range svc.Summary(ctx).Industries {
				res, err := svc.Estimate(ctx, model.RawRequest{
					Industry:   industry,
					Size:       "Medium",
					Complexity: "Medium",
					PrevIssues: 1,
				})

				So(err, ShouldBeNil)
				So(res.RecommendedWeeks, ShouldBeGreaterThanOrEqualTo, 1)
				So(len(res.SuggestedTeam), ShouldEqual, 4)
				So(len(res.StaffRanking), ShouldEqual, ref.StaffCount())
			}
		})

		Convey("When ranking the sample roster", func() {
			top := svc.Ranking(ctx, 1)

			Convey("Then the audit manager leads", func() {
				// Manager with Audit and 20h: 2 + 4 + 0.5.
				So(top[0].StaffID, ShouldEqual, "S001")
				So(top[0].Score, ShouldEqual, 6.5)
			})
		})
	})
}
