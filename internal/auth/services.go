package auth

import (
	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/core"
)

const cookieName = core.SessionCookieName

func Register(injector *do.Injector) {
	do.Provide(injector, NewSessions)
}
