package possibletypes

// Middleware wraps a link with additional behavior. FragmentMatcher.Link is one.
type Middleware func(next Link) Link

// Chain builds a single link out of the terminating link and the middlewares. The
// first middleware sees the operation first and the response last.
func Chain(terminal Link, middlewares ...Middleware) Link {
	link := terminal
	for i := len(middlewares) - 1; i >= 0; i-- {
		link = middlewares[i](link)
	}

	return link
}
