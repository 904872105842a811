package ballots

import (
	"github.com/samber/do"
)

func Register(injector *do.Injector) {
	do.Provide(injector, NewStore)
	do.Provide(injector, NewSubmitter)
}
