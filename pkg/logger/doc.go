// Package logger configures log/slog for the service and provides attribute
// helpers that keep key names consistent across packages.
//
// New builds a JSON or text handler and wraps it with LogHandlerDecorator,
// which runs registered ContextExtractor callbacks on every record so
// request-scoped values such as the request id or session id are attached
// without threading a logger through every call.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "linkbio-dashboard"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "signed in", logger.Subject(id.Subject), logger.Component("auth"))
//
// Library packages default to Discard and accept a *slog.Logger through their
// own WithLogger options.
package logger
