package conversation

import "go.uber.org/fx"

// Module provides the order flow. Messenger and Committer are supplied by the app.
var Module = fx.Provide(NewMachine, NewService)
