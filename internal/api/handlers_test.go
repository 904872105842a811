package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/skcvote/ballotd/internal/api"
	"github.com/skcvote/ballotd/internal/auth"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/internal/elections"
	"github.com/skcvote/ballotd/internal/seed"
	"github.com/skcvote/ballotd/pkg/json"
	"github.com/skcvote/ballotd/testhelpers"
)

var _ = Describe("Server", func() {
	var injector *do.Injector
	var server *api.Server
	var sessions *auth.Sessions

	voterCookie := func(voterID string) *http.Cookie {
		GinkgoHelper()

		token := lo.Must(sessions.Issue(auth.Session{UserID: voterID}, time.Now()))

		return &http.Cookie{Name: core.SessionCookieName, Value: token}
	}

	adminCookie := func() *http.Cookie {
		GinkgoHelper()

		token := lo.Must(sessions.Issue(auth.Session{Admin: true}, time.Now()))

		return &http.Cookie{Name: core.SessionCookieName, Value: token}
	}

	request := func(method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		GinkgoHelper()

		var reader *bytes.Reader
		if body == nil {
			reader = bytes.NewReader(nil)
		} else {
			reader = bytes.NewReader(lo.Must(json.Marshal(body)))
		}

		req := httptest.NewRequest(method, target, reader)
		req.Header.Set("Content-Type", "application/json")

		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}

		recorder := httptest.NewRecorder()
		server.Router.ServeHTTP(recorder, req)

		return recorder
	}

	BeforeEach(func(ctx SpecContext) {
		injector = testhelpers.NewInjector()

		server = lo.Must(do.Invoke[*api.Server](injector))
		sessions = lo.Must(do.Invoke[*auth.Sessions](injector))

		seeder := lo.Must(do.Invoke[*seed.Seeder](injector))
		lo.Must0(seeder.Ensure(ctx))
	})

	Describe("GET /api/health", func() {
		It("responds ok", func() {
			recorder := request(http.MethodGet, "/api/health", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("GET /api/stats", func() {
		It("returns the seeded counters", func() {
			recorder := request(http.MethodGet, "/api/stats", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			stats := lo.Must(json.Unmarshal[api.StatsResponse](recorder.Body.Bytes()))

			Expect(stats.OK).To(BeTrue())
			Expect(stats.TotalVoters).To(Equal(int64(894)))
			Expect(stats.ActiveNow).To(Equal(int64(136)))
		})

		It("counts accepted ballots into totalVoters", func() {
			recorder := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{
				Votes: map[string]string{"President": "Ariana Grande"},
			}, voterCookie("voter-1"))
			Expect(recorder.Code).To(Equal(http.StatusOK))

			stats := lo.Must(json.Unmarshal[api.StatsResponse](
				request(http.MethodGet, "/api/stats", nil).Body.Bytes(),
			))

			Expect(stats.TotalVoters).To(Equal(int64(895)))
		})
	})

	Describe("GET /api/candidates", func() {
		It("returns the default election's ballot view", func() {
			recorder := request(http.MethodGet, "/api/candidates", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			response := lo.Must(json.Unmarshal[api.CandidatesResponse](recorder.Body.Bytes()))

			Expect(response.ElectionID).To(Equal("skc"))
			Expect(response.Status).To(Equal(core.StatusOpen))
			Expect(response.Positions).To(HaveLen(3))
			Expect(response.Positions[0].Position).To(Equal("President"))
			Expect(response.Positions[0].Candidates).To(HaveLen(2))
		})

		It("returns an empty ballot view for an unknown election", func() {
			recorder := request(http.MethodGet, "/api/candidates?electionId=ghost", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			response := lo.Must(json.Unmarshal[api.CandidatesResponse](recorder.Body.Bytes()))

			Expect(response.ElectionID).To(Equal("ghost"))
			Expect(response.Positions).To(BeEmpty())
		})
	})

	Describe("GET /api/votes/status", func() {
		Context("without a session", func() {
			It("reports unauthenticated", func() {
				recorder := request(http.MethodGet, "/api/votes/status", nil)

				Expect(recorder.Code).To(Equal(http.StatusOK))

				status := lo.Must(json.Unmarshal[api.VoteStatusResponse](recorder.Body.Bytes()))

				Expect(status.Authenticated).To(BeFalse())
				Expect(status.HasVoted).To(BeFalse())
			})
		})

		Context("with a voter session", func() {
			It("reports whether the voter has voted", func() {
				cookie := voterCookie("voter-1")

				status := lo.Must(json.Unmarshal[api.VoteStatusResponse](
					request(http.MethodGet, "/api/votes/status", nil, cookie).Body.Bytes(),
				))

				Expect(status.Authenticated).To(BeTrue())
				Expect(status.HasVoted).To(BeFalse())

				recorder := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{
					Votes: map[string]string{"President": "Ariana Grande"},
				}, cookie)
				Expect(recorder.Code).To(Equal(http.StatusOK))

				status = lo.Must(json.Unmarshal[api.VoteStatusResponse](
					request(http.MethodGet, "/api/votes/status", nil, cookie).Body.Bytes(),
				))

				Expect(status.HasVoted).To(BeTrue())
			})
		})
	})

	Describe("POST /api/votes/submit", func() {
		Context("without a session", func() {
			It("rejects with not_authenticated", func() {
				recorder := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{Votes: map[string]string{}})

				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
				Expect(recorder.Body.String()).To(ContainSubstring("not_authenticated"))
			})
		})

		Context("with an admin session", func() {
			It("rejects with not_authenticated", func() {
				recorder := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{
					Votes: map[string]string{},
				}, adminCookie())

				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
			})
		})

		Context("without a votes object", func() {
			It("rejects with missing_votes", func() {
				recorder := request(http.MethodPost, "/api/votes/submit", map[string]any{}, voterCookie("voter-1"))

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
				Expect(recorder.Body.String()).To(ContainSubstring("missing_votes"))
			})
		})

		Context("with valid selections", func() {
			It("returns a receipt", func() {
				recorder := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{
					Votes: map[string]string{
						"President":      "Ariana Grande",
						"Vice President": "Harry Styles",
					},
				}, voterCookie("voter-1"))

				Expect(recorder.Code).To(Equal(http.StatusOK))

				response := lo.Must(json.Unmarshal[api.SubmitResponse](recorder.Body.Bytes()))

				Expect(response.OK).To(BeTrue())
				Expect(response.ReceiptID).To(MatchRegexp(`^#\d{8}$`))
				Expect(response.Timestamp).ToNot(BeZero())
			})
		})

		Context("when the voter submits twice", func() {
			It("rejects the second ballot with already_voted", func() {
				cookie := voterCookie("voter-1")
				ballot := api.SubmitRequest{Votes: map[string]string{"President": "Ariana Grande"}}

				Expect(request(http.MethodPost, "/api/votes/submit", ballot, cookie).Code).To(Equal(http.StatusOK))

				recorder := request(http.MethodPost, "/api/votes/submit", ballot, cookie)

				Expect(recorder.Code).To(Equal(http.StatusConflict))
				Expect(recorder.Body.String()).To(ContainSubstring("already_voted"))
			})
		})

		Context("with a selection off the roster", func() {
			It("rejects with invalid_vote naming the position", func() {
				recorder := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{
					Votes: map[string]string{"President": "Nobody"},
				}, voterCookie("voter-1"))

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))

				body := lo.Must(json.Unmarshal[map[string]any](recorder.Body.Bytes()))

				Expect(body["error"]).To(Equal("invalid_vote"))
				Expect(body["position"]).To(Equal("President"))
			})
		})

		Context("when voting is closed", func() {
			It("rejects with voting_closed and the end time", func(ctx SpecContext) {
				registry := lo.Must(do.Invoke[*elections.Registry](injector))
				lo.Must(registry.Upsert(ctx, elections.UpsertInput{ElectionID: "skc", EndAt: "2000-01-01"}))

				recorder := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{
					Votes: map[string]string{"President": "Ariana Grande"},
				}, voterCookie("voter-1"))

				Expect(recorder.Code).To(Equal(http.StatusForbidden))

				body := lo.Must(json.Unmarshal[map[string]any](recorder.Body.Bytes()))

				Expect(body["error"]).To(Equal("voting_closed"))
				Expect(body["endAt"]).ToNot(BeNil())
			})
		})
	})

	Describe("GET /api/results", func() {
		It("withholds results while the election is open", func() {
			recorder := request(http.MethodGet, "/api/results", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			response := lo.Must(json.Unmarshal[api.ResultsResponse](recorder.Body.Bytes()))

			Expect(response.Status).To(Equal(core.StatusOpen))
			Expect(response.Results).To(BeEmpty())
		})

		It("reports counts and percentages once closed", func(ctx SpecContext) {
			submit := request(http.MethodPost, "/api/votes/submit", api.SubmitRequest{
				Votes: map[string]string{"President": "Ariana Grande"},
			}, voterCookie("voter-1"))
			Expect(submit.Code).To(Equal(http.StatusOK))

			registry := lo.Must(do.Invoke[*elections.Registry](injector))
			lo.Must(registry.Upsert(ctx, elections.UpsertInput{ElectionID: "skc", EndAt: "2000-01-01"}))

			recorder := request(http.MethodGet, "/api/results", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			response := lo.Must(json.Unmarshal[api.ResultsResponse](recorder.Body.Bytes()))

			Expect(response.Status).To(Equal(core.StatusClosed))
			Expect(response.Results).To(HaveLen(3))

			president := response.Results[0]
			Expect(president.Candidates[0]).To(Equal(core.CandidateResult{
				Name: "Ariana Grande", Party: "Partido Liwanag", Votes: 1, Percentage: 100,
			}))
			Expect(president.Candidates[1]).To(Equal(core.CandidateResult{
				Name: "Taylor Swift", Party: "Partido Tapat", Votes: 0, Percentage: 0,
			}))
		})
	})

	Describe("GET /api/elections", func() {
		Context("without an admin session", func() {
			It("rejects voters and anonymous callers", func() {
				Expect(request(http.MethodGet, "/api/elections", nil).Code).To(Equal(http.StatusUnauthorized))
				Expect(request(http.MethodGet, "/api/elections", nil, voterCookie("voter-1")).Code).To(Equal(http.StatusUnauthorized))
			})
		})

		Context("with an admin session", func() {
			It("lists elections with collection counts", func() {
				recorder := request(http.MethodGet, "/api/elections", nil, adminCookie())

				Expect(recorder.Code).To(Equal(http.StatusOK))

				response := lo.Must(json.Unmarshal[api.ElectionsResponse](recorder.Body.Bytes()))

				Expect(response.Elections).To(HaveLen(1))
				Expect(response.Elections[0].ID).To(Equal("skc"))
				Expect(response.Elections[0].CandidateCount).To(Equal(5))
				Expect(response.Elections[0].TotalBallots).To(BeZero())
			})
		})
	})

	Describe("POST /api/elections", func() {
		Context("with an admin session", func() {
			It("creates an election from the admin console payload", func() {
				recorder := request(http.MethodPost, "/api/elections", map[string]any{
					"orgClub":          "JPIA",
					"eventEnd":         "2099-12-31",
					"positionIncluded": "President",
				}, adminCookie())

				Expect(recorder.Code).To(Equal(http.StatusOK))

				response := lo.Must(json.Unmarshal[api.ElectionResponse](recorder.Body.Bytes()))

				Expect(response.Election.ID).To(Equal("jpia"))
				Expect(response.Election.Status).To(Equal(core.StatusOpen))
				Expect(response.Election.Positions).To(Equal([]string{"President"}))
			})

			It("rejects a payload without a name", func() {
				recorder := request(http.MethodPost, "/api/elections", map[string]any{
					"eventEnd": "2099-12-31",
				}, adminCookie())

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
				Expect(recorder.Body.String()).To(ContainSubstring("missing_fields"))
			})

			It("rejects a payload without an end date", func() {
				recorder := request(http.MethodPost, "/api/elections", map[string]any{
					"orgClub": "JPIA",
				}, adminCookie())

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
				Expect(recorder.Body.String()).To(ContainSubstring("missing_end_date"))
			})

			It("rejects an unparseable end date", func() {
				recorder := request(http.MethodPost, "/api/elections", map[string]any{
					"orgClub":  "JPIA",
					"eventEnd": "whenever",
				}, adminCookie())

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
				Expect(recorder.Body.String()).To(ContainSubstring("invalid_end_date"))
			})

			It("rejects a malformed body with missing_fields", func() {
				req := httptest.NewRequest(http.MethodPost, "/api/elections", bytes.NewReader([]byte("{not json")))
				req.Header.Set("Content-Type", "application/json")
				req.AddCookie(adminCookie())

				recorder := httptest.NewRecorder()
				server.Router.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
				Expect(recorder.Body.String()).To(ContainSubstring("missing_fields"))
			})
		})

		Context("without an admin session", func() {
			It("rejects the request", func() {
				recorder := request(http.MethodPost, "/api/elections", map[string]any{
					"orgClub":  "JPIA",
					"eventEnd": "2099-12-31",
				}, voterCookie("voter-1"))

				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
			})
		})
	})
})
