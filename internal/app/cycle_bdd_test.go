package app

import (
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"eyeguard/internal/core/escalation"
	"eyeguard/internal/core/model"
	"eyeguard/internal/core/timekeeper"
	"eyeguard/internal/ui/overlay"
)

var _ = Describe("Work/rest cycle", func() {
	const tick = 100 * time.Millisecond

	var (
		fake       *clockwork.FakeClock
		keeper     *timekeeper.TimeKeeper
		presenter  *fakePresenter
		source     *fakeSource
		window     *fakeWindow
		trayState  *fakeTray
		composer   *fakeComposer
		controller *Controller
	)

	advance := func(total time.Duration) {
		for step := time.Duration(0); step < total; step += tick {
			fake.Advance(tick)
			keeper.Tick(fake.Now())
		}
	}

	BeforeEach(func() {
		fake = clockwork.NewFakeClock()
		keeper = timekeeper.New(model.CycleConfig{
			WorkDuration:  time.Minute,
			RestDuration:  20 * time.Second,
			WaterInterval: 2,
			WalkInterval:  3,
		}, fake)
		presenter = &fakePresenter{}
		source = &fakeSource{monitors: twoMonitors()}
		window = &fakeWindow{}
		trayState = &fakeTray{}
		composer = &fakeComposer{}

		controller = New(keeper, overlay.NewManager(presenter, source, nil), composer, Options{})
		controller.Attach(window, trayState)
		keeper.Start()
	})

	Describe("starting up", func() {
		It("shows the control window in focus mode", func() {
			Expect(window.visible).To(BeTrue())
			Expect(window.status).To(Equal(timekeeper.StatusFocus))
			Expect(window.time).To(Equal("01:00"))
			Expect(presenter.surfaces).To(BeEmpty())
		})
	})

	Describe("the work period ending", func() {
		BeforeEach(func() {
			advance(time.Minute)
		})

		It("covers every monitor with an overlay", func() {
			live := presenter.live()
			Expect(live).To(HaveLen(2))
			for _, surface := range live {
				Expect(surface.visible).To(BeTrue())
				Expect(surface.countdown).To(Equal("00:20"))
				Expect(surface.message).To(Equal("rest for 20 seconds"))
			}
		})

		It("hides the control window and reports the rest", func() {
			Expect(window.visible).To(BeFalse())
			Expect(window.resting).To(BeTrue())
			Expect(window.status).To(Equal(timekeeper.StatusRest))
			Expect(trayState.status).To(Equal(timekeeper.StatusRest))
			Expect(trayState.resting).To(BeTrue())
		})

		It("counts the rest down on the overlays", func() {
			advance(5 * time.Second)
			for _, surface := range presenter.live() {
				Expect(surface.countdown).To(Equal("00:15"))
			}
		})

		Context("when the rest runs out", func() {
			It("tears the overlays down and returns to work", func() {
				advance(20 * time.Second)

				Expect(presenter.live()).To(BeEmpty())
				Expect(window.visible).To(BeTrue())
				Expect(window.status).To(Equal(timekeeper.StatusFocus))
				Expect(keeper.Snapshot().Mode).To(Equal(timekeeper.ModeWork))
			})
		})

		Context("when the user skips the rest", func() {
			It("clears all overlays and forces work without touching the rest count", func() {
				countBefore := keeper.Snapshot().RestCount
				advance(2 * time.Second)

				controller.Skip()

				Expect(presenter.live()).To(BeEmpty())
				snapshot := keeper.Snapshot()
				Expect(snapshot.Mode).To(Equal(timekeeper.ModeWork))
				Expect(snapshot.RestCount).To(Equal(countBefore))
				Expect(window.visible).To(BeTrue())
			})
		})

		Context("when the monitor layout changes before the next rest", func() {
			It("rebuilds overlays for the new layout", func() {
				advance(20 * time.Second)
				source.monitors = source.monitors[:1]
				advance(time.Minute)

				Expect(presenter.live()).To(HaveLen(1))
				Expect(presenter.surfaces).To(HaveLen(3))
			})
		})
	})

	Describe("escalation", func() {
		It("cycles through water and walk reminders", func() {
			for i := 0; i < 3; i++ {
				advance(time.Minute)
				advance(20 * time.Second)
			}
			Expect(composer.types).To(Equal([]escalation.RestType{
				escalation.EyeRest, escalation.Water, escalation.Walk,
			}))
		})
	})

	Describe("pausing", func() {
		It("freezes the cycle and mirrors the state", func() {
			advance(30 * time.Second)
			controller.TogglePause()
			advance(5 * time.Minute)

			Expect(window.paused).To(BeTrue())
			Expect(trayState.paused).To(BeTrue())
			Expect(presenter.surfaces).To(BeEmpty())

			controller.TogglePause()
			advance(30 * time.Second)
			Expect(presenter.live()).To(HaveLen(2))
		})
	})
})
