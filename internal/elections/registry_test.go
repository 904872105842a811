package elections_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/internal/elections"
	"github.com/skcvote/ballotd/testhelpers"
)

var _ = Describe("Registry", func() {
	var registry *elections.Registry

	BeforeEach(func() {
		injector := testhelpers.NewInjector()

		registry = lo.Must(do.Invoke[*elections.Registry](injector))
	})

	Describe("Upsert", func() {
		Context("with a name and end date", func() {
			It("derives the id from the name", func(ctx SpecContext) {
				summary, err := registry.Upsert(ctx, elections.UpsertInput{
					Name:  "Arts & Dance Club",
					EndAt: "2099-12-31",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(summary.ID).To(Equal("arts_dance_club"))
				Expect(summary.Status).To(Equal(core.StatusOpen))
				Expect(summary.EndAt).ToNot(BeNil())
			})

			It("accepts the legacy admin console aliases", func(ctx SpecContext) {
				summary, err := registry.Upsert(ctx, elections.UpsertInput{
					OrgClub:  "JPIA",
					EventEnd: "2099-12-31",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(summary.ID).To(Equal("jpia"))
				Expect(summary.Name).To(Equal("JPIA"))
			})
		})

		Context("without an id or name", func() {
			It("fails with missing fields", func(ctx SpecContext) {
				_, err := registry.Upsert(ctx, elections.UpsertInput{EndAt: "2099-12-31"})

				Expect(err).To(MatchError(core.ErrMissingFields))
			})
		})

		Context("without an end date", func() {
			It("fails with missing end date", func(ctx SpecContext) {
				_, err := registry.Upsert(ctx, elections.UpsertInput{Name: "JPIA"})

				Expect(err).To(MatchError(core.ErrMissingEndDate))
			})
		})

		Context("with an unparseable end date", func() {
			It("fails with invalid end date", func(ctx SpecContext) {
				_, err := registry.Upsert(ctx, elections.UpsertInput{Name: "JPIA", EndAt: "whenever"})

				Expect(err).To(MatchError(core.ErrInvalidEndDate))
			})
		})

		Context("when repeated with different positions", func() {
			It("accumulates positions as a union", func(ctx SpecContext) {
				lo.Must(registry.Upsert(ctx, elections.UpsertInput{
					Name:             "JPIA",
					EndAt:            "2099-12-31",
					PositionIncluded: "President",
				}))

				summary, err := registry.Upsert(ctx, elections.UpsertInput{
					ElectionID:       "jpia",
					EndAt:            "2099-12-31",
					PositionIncluded: "Secretary",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(summary.Positions).To(Equal([]string{"President", "Secretary"}))
			})

			It("does not duplicate an existing position", func(ctx SpecContext) {
				lo.Must(registry.Upsert(ctx, elections.UpsertInput{
					Name:             "JPIA",
					EndAt:            "2099-12-31",
					PositionIncluded: "President",
				}))

				summary := lo.Must(registry.Upsert(ctx, elections.UpsertInput{
					ElectionID:       "jpia",
					EndAt:            "2099-12-31",
					PositionIncluded: "President",
				}))

				Expect(summary.Positions).To(Equal([]string{"President"}))
			})
		})
	})

	Describe("Get", func() {
		Context("when the election does not exist", func() {
			It("returns an open stub instead of failing", func(ctx SpecContext) {
				election, err := registry.Get(ctx, "ghost")

				Expect(err).ToNot(HaveOccurred())
				Expect(election.ID).To(Equal("ghost"))
				Expect(election.EndAt).To(BeNil())
			})
		})

		Context("when the election exists", func() {
			It("returns the stored config", func(ctx SpecContext) {
				lo.Must(registry.Upsert(ctx, elections.UpsertInput{Name: "JPIA", EndAt: "2099-12-31"}))

				election, err := registry.Get(ctx, "jpia")

				Expect(err).ToNot(HaveOccurred())
				Expect(election.Name).To(Equal("JPIA"))
				Expect(election.EndAt).ToNot(BeNil())
			})
		})
	})

	Describe("List", func() {
		It("returns elections sorted by id with derived status", func(ctx SpecContext) {
			lo.Must(registry.Upsert(ctx, elections.UpsertInput{Name: "Zeta", EndAt: "2000-01-01"}))
			lo.Must(registry.Upsert(ctx, elections.UpsertInput{Name: "Alpha", EndAt: "2099-12-31"}))

			summaries, err := registry.List(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[0].ID).To(Equal("alpha"))
			Expect(summaries[0].Status).To(Equal(core.StatusOpen))
			Expect(summaries[1].ID).To(Equal("zeta"))
			Expect(summaries[1].Status).To(Equal(core.StatusClosed))
		})
	})
})
