// Package resp builds standardized success and failure envelopes for HTTP
// handlers and renders them through net/http or gin.
//
// # Envelope
//
// Every body has the same shape:
//
//	{
//	  "code": 200,          // business code
//	  "message": "OK",      // explicit or registered message for code
//	  "data": {...},        // payload, null on failure
//	  "errors": {...}       // failure detail, only on failure
//	}
//
// The transport status is resolved separately from the business code: on
// success by the formatter (ecode.ToHTTPStatus by default), on failure by
// response.error_code when configured.
//
// # Dispatch
//
// Success chooses the formatting strategy from the output data, first match
// wins:
//
//	*Collection        resource collection, optionally paginated
//	Transformable      single resource (*Resource[T])
//	paging.Paginator   *paging.Page[T] or *paging.Result[T]
//	Arrayable          converted with ToArray, then formatted as plain data
//	anything else      plain data, bare scalars wrapped into a list
//
// Resource and collection results carry the untransformed domain values in
// Result.Original and run the hook set with WithResponse.
//
// # Failures
//
//	d := resp.New(resp.WithConfig(cfg.Response))
//
//	// terminal: propagate err, the renderer writes the carried result
//	if widget == nil {
//	    return nil, d.ErrorNotFound(ctx, "widget not found")
//	}
//
//	// with detail: not terminal, the caller decides
//	res, _ := d.Fail(ctx, "quota exceeded", 429, map[string]any{"limit": 10}, nil, 0)
//
// # Gin
//
//	r.GET("/widgets/:id", d.Handle(func(ctx context.Context, c *gin.Context) (*resp.Result, error) {
//	    w, err := repo.Get(c.Param("id"))
//	    if err != nil {
//	        return nil, d.ErrorNotFound(ctx, "")
//	    }
//	    return d.Success(ctx, resp.NewResource(w, present), "", http.StatusOK, nil, 0), nil
//	}))
//
// Handlers that do not return results can push terminal failures with
// c.Error and let the Terminal middleware render them.
package resp
