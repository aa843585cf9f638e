package teams

import "errors"

// ErrNoOpenTeams indicates an assignment was attempted with an empty open-team
// list. With a valid Config this cannot happen; it guards the invariant anyway.
var ErrNoOpenTeams = errors.New("no open teams available for assignment")
