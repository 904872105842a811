package elections_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/skcvote/ballotd/internal/elections"
)

var _ = Describe("SlugifyElectionID", func() {
	It("lowercases and collapses non-alphanumerics", func() {
		Expect(elections.SlugifyElectionID("Supreme Katipunan Council")).To(Equal("supreme_katipunan_council"))
		Expect(elections.SlugifyElectionID("JPIA -- 2026!")).To(Equal("jpia_2026"))
	})

	It("trims leading and trailing separators", func() {
		Expect(elections.SlugifyElectionID("  ...Arts & Dance...  ")).To(Equal("arts_dance"))
	})

	It("returns empty for names without alphanumerics", func() {
		Expect(elections.SlugifyElectionID("!!!")).To(Equal(""))
		Expect(elections.SlugifyElectionID("")).To(Equal(""))
	})

	It("truncates to the maximum id length", func() {
		slug := elections.SlugifyElectionID(strings.Repeat("a", 100))

		Expect(slug).To(HaveLen(48))
	})
})

var _ = Describe("ParseTimestamp", func() {
	Context("with a bare calendar date", func() {
		It("coerces end dates to end-of-day UTC", func() {
			parsed, err := elections.ParseTimestamp("2026-05-01", true)

			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(time.Date(2026, 5, 1, 23, 59, 59, 0, time.UTC)))
		})

		It("coerces start dates to start-of-day UTC", func() {
			parsed, err := elections.ParseTimestamp("2026-05-01", false)

			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
		})
	})

	Context("with a full timestamp", func() {
		It("parses RFC3339", func() {
			parsed, err := elections.ParseTimestamp("2026-05-01T12:30:00Z", true)

			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)))
		})
	})

	Context("with garbage", func() {
		It("returns an error", func() {
			_, err := elections.ParseTimestamp("not-a-date", true)

			Expect(err).To(HaveOccurred())
		})
	})
})
