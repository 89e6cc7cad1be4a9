package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResult(t *testing.T) {
	Convey("Given a result with mixed counts", t, func(c C) {
		res := &Result{
			Circuit: "test",
			Shots:   100,
			Counts:  map[string]int{"00": 50, "11": 40, "01": 10},
		}

		Convey("Then TotalCounts sums every outcome", func(c C) {
			c.So(res.TotalCounts(), ShouldEqual, 100)
		})

		Convey("Then Probabilities normalizes to 1", func(c C) {
			probs := res.Probabilities()
			c.So(probs["00"], ShouldAlmostEqual, 0.5)
			c.So(probs["11"], ShouldAlmostEqual, 0.4)
			c.So(probs["01"], ShouldAlmostEqual, 0.1)
		})

		Convey("Then Top orders by count descending", func(c C) {
			top := res.Top(2)
			c.So(top, ShouldHaveLength, 2)
			c.So(top[0].Label, ShouldEqual, "00")
			c.So(top[1].Label, ShouldEqual, "11")
		})

		Convey("Then Top breaks ties by label", func(c C) {
			res.Counts["10"] = 40
			top := res.Top(3)
			c.So(top[1].Label, ShouldEqual, "10")
			c.So(top[2].Label, ShouldEqual, "11")
		})
	})

	Convey("Given partial histograms from shards", t, func(c C) {
		merged := mergeCounts([]map[string]int{
			{"00": 3, "11": 2},
			{"00": 1, "01": 4},
			nil,
		})

		c.So(merged, ShouldResemble, map[string]int{"00": 4, "11": 2, "01": 4})
	})

	Convey("Given an empty result", t, func(c C) {
		res := &Result{}
		c.So(res.TotalCounts(), ShouldEqual, 0)
		c.So(res.Probabilities(), ShouldBeNil)
		c.So(res.Top(5), ShouldBeEmpty)
	})
}

func TestMetrics(t *testing.T) {
	Convey("Given fresh metrics", t, func(c C) {
		m := NewMetrics()

		Convey("When recording successes and failures", func(c C) {
			m.recordRun(RunRecord{ID: "a", Shots: 10}, nil)
			m.recordRun(RunRecord{ID: "b", Shots: 10}, nil)
			m.recordRun(RunRecord{ID: "c"}, ErrInvalidShots)

			c.So(m.RunCount, ShouldEqual, 2)
			c.So(m.Failures, ShouldEqual, 1)
			c.So(m.History(), ShouldHaveLength, 2)

			Convey("Then the export carries the same numbers", func(c C) {
				snapshot := m.Export()
				c.So(snapshot["run_count"], ShouldEqual, 2)
				c.So(snapshot["failures"], ShouldEqual, 1)
			})
		})

		Convey("When the history limit is exceeded", func(c C) {
			for i := 0; i < defaultHistoryLimit+20; i++ {
				m.recordRun(RunRecord{ID: "run"}, nil)
			}

			c.So(m.History(), ShouldHaveLength, defaultHistoryLimit)
		})
	})
}
