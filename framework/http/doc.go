// Package http serves a chi Router out of the Container.
//
// # Lifecycle
//
//	application.On(lifecycle.Load, config.AddLoaders(gohttp.ConfigLoader))
//	application.On(lifecycle.Init, gohttp.Init(), gohttp.Routes(routes))
//	application.On(lifecycle.Startup, gohttp.Serve(ConfigTag))
//	application.On(lifecycle.Shutdown, gohttp.Stop(ConfigTag))
//
// Init provides the Router under RouterTag. Serve listens on the configured
// address and injects the Server under ServerTag; Stop consumes it and
// shuts it down.
//
// # Dependencies
//
// Every request served by Serve carries the Container. Handlers resolve
// their dependencies lazily:
//
//	func listUsers(w http.ResponseWriter, r *http.Request) {
//	    svc, err := gohttp.DependencyTag(r, users.ServiceTag)
//	    if err != nil {
//	        gohttp.NewResponse(w).ServerError()
//	        return
//	    }
//	    ...
//	}
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	var payload struct {
//	    Name string `json:"name"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	page  := req.Query("page", "1")
//	id    := req.RouteParam("id")
//	token := req.BearerToken()
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.Unprocessable(fields)     // 422 {"message": ..., "errors": {"field": ["msg"]}}
package http
