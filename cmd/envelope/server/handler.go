package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/envelope/consts"
	"github.com/ncobase/envelope/net/resp"
	"github.com/ncobase/envelope/paging"
	"github.com/ncobase/envelope/version"
)

// Handler serves the widget routes.
type Handler struct {
	disp  atomic.Pointer[resp.Dispatcher]
	store *Store
	jobs  *Jobs
}

// NewHandler creates a widget handler.
func NewHandler(d *resp.Dispatcher, s *Store, jobs *Jobs) *Handler {
	h := &Handler{store: s, jobs: jobs}
	h.disp.Store(d)
	return h
}

// SetDispatcher swaps the dispatcher used by subsequent requests.
func (h *Handler) SetDispatcher(d *resp.Dispatcher) {
	h.disp.Store(d)
}

// Dispatcher returns the current dispatcher.
func (h *Handler) Dispatcher() *resp.Dispatcher {
	return h.disp.Load()
}

func (h *Handler) handle(fn resp.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Dispatcher().Handle(fn)(c)
	}
}

// widgetView is the public representation of a widget.
type widgetView struct {
	ID       string `json:"id" xml:"id"`
	Name     string `json:"name" xml:"name"`
	Color    string `json:"color,omitempty" xml:"color,omitempty"`
	Quantity int    `json:"quantity" xml:"quantity"`
	Locked   bool   `json:"locked" xml:"locked"`
	Created  string `json:"created_at" xml:"created_at"`
}

func presentWidget(w Widget) any {
	return widgetView{
		ID:       w.ID,
		Name:     w.Name,
		Color:    w.Color,
		Quantity: w.Quantity,
		Locked:   w.Locked,
		Created:  w.CreatedAt.Format(time.RFC3339),
	}
}

func widgetResource(w Widget) *resp.Resource[Widget] {
	return resp.NewResource(w, presentWidget).WithResponse(func(_ *http.Request, res *resp.Result) {
		res.SetHeader("Last-Modified", w.UpdatedAt.Format(http.TimeFormat))
	})
}

type listQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

type feedQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"`
}

// Register mounts the widget routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.handle(h.health))
	r.GET("/version", h.handle(h.version))

	g := r.Group("/widgets")
	g.GET("", h.handle(h.list))
	g.POST("", h.handle(h.create))
	g.GET("/feed", h.handle(h.feed))
	g.GET("/stats", h.handle(h.stats))
	g.POST("/export", h.handle(h.export))
	g.GET("/:id", h.handle(h.get))
	g.PUT("/:id", h.handle(h.update))
	g.DELETE("/:id", h.handle(h.delete))
	g.POST("/:id/lock", h.handle(h.lock))

	r.GET("/jobs/:id", h.handle(h.job))
}

func (h *Handler) health(ctx context.Context, _ *gin.Context) (*resp.Result, error) {
	return h.Dispatcher().Localize(ctx, codeServing, nil, 0), nil
}

func (h *Handler) version(ctx context.Context, _ *gin.Context) (*resp.Result, error) {
	return h.Dispatcher().Success(ctx, version.GetVersionInfo(), "", http.StatusOK, nil, 0), nil
}

func (h *Handler) list(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, d.ErrorBadRequest(ctx, "invalid page parameters")
	}

	page := paging.NewPage[Widget](nil, q.Page, q.PerPage, 0)
	page.Items, page.Total = h.store.List(page.Offset(), page.PerPage)

	col := resp.PageOf(page, presentWidget).WithResponse(func(_ *http.Request, res *resp.Result) {
		res.SetHeader(consts.TotalKey, strconv.Itoa(page.Total))
	})
	return d.Success(ctx, col, "", http.StatusOK, nil, 0), nil
}

func (h *Handler) feed(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	var q feedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, d.ErrorBadRequest(ctx, "invalid cursor parameters")
	}

	result, err := paging.Paginate(paging.Params{Cursor: q.Cursor, Limit: q.Limit}, h.store.After)
	if err != nil {
		return nil, d.ErrorBadRequest(ctx, "invalid cursor")
	}
	return d.Success(ctx, result, "", http.StatusOK, nil, 0), nil
}

func (h *Handler) stats(ctx context.Context, _ *gin.Context) (*resp.Result, error) {
	return h.Dispatcher().Success(ctx, h.store.Stats(), "", http.StatusOK, nil, 0), nil
}

func (h *Handler) get(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	w, err := h.store.Get(c.Param("id"))
	if err != nil {
		return nil, d.ErrorNotFound(ctx, "")
	}
	return d.Success(ctx, widgetResource(w), "", http.StatusOK, nil, 0), nil
}

func (h *Handler) create(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	var body WidgetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, d.ErrorBadRequest(ctx, "malformed widget payload")
	}
	if res := d.Invalid(ctx, "", &body); res != nil {
		return res, nil
	}

	w := h.store.Create(body)
	return d.Created(ctx, widgetResource(*w), "", "/widgets/"+w.ID), nil
}

func (h *Handler) update(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	var body WidgetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, d.ErrorBadRequest(ctx, "malformed widget payload")
	}
	if res := d.Invalid(ctx, "", &body); res != nil {
		return res, nil
	}

	w, err := h.store.Update(c.Param("id"), body)
	switch {
	case errors.Is(err, ErrWidgetNotFound):
		return nil, d.ErrorNotFound(ctx, "")
	case errors.Is(err, ErrWidgetLocked):
		return d.Fail(ctx, "", codeWidgetLocked, map[string]any{"id": w.ID, "locked": true}, nil, 0)
	}
	return d.Success(ctx, widgetResource(w), "", codeWidgetSaved, nil, 0), nil
}

func (h *Handler) lock(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	w, err := h.store.Lock(c.Param("id"))
	switch {
	case errors.Is(err, ErrWidgetNotFound):
		return nil, d.ErrorNotFound(ctx, "")
	case errors.Is(err, ErrWidgetLocked):
		return d.Fail(ctx, "", codeWidgetLocked, map[string]any{"id": w.ID, "locked": true}, nil, 0)
	}
	return d.Localize(ctx, codeWidgetSaved, nil, 0), nil
}

func (h *Handler) delete(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	if err := h.store.Delete(c.Param("id")); err != nil {
		return nil, d.ErrorNotFound(ctx, "")
	}
	return d.NoContent(ctx, ""), nil
}

func (h *Handler) export(ctx context.Context, _ *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	job, err := h.jobs.Enqueue("export", h.exportWidgets)
	if err != nil {
		return nil, d.ErrorInternal(ctx, "export queue is full, retry later", http.StatusServiceUnavailable)
	}
	return d.Accepted(ctx, resp.NewResource(job, nil), "", "/jobs/"+job.ID), nil
}

// exportWidgets snapshots every widget in pages of 100.
func (h *Handler) exportWidgets(ctx context.Context) (any, error) {
	var out []any
	for offset := 0; ; offset += 100 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, total := h.store.List(offset, 100)
		for _, w := range items {
			out = append(out, presentWidget(w))
		}
		if offset+100 >= total {
			return map[string]any{"total": total, "widgets": out}, nil
		}
	}
}

func (h *Handler) job(ctx context.Context, c *gin.Context) (*resp.Result, error) {
	d := h.Dispatcher()

	job, err := h.jobs.Get(c.Param("id"))
	if err != nil {
		return nil, d.ErrorNotFound(ctx, "")
	}
	return d.Success(ctx, resp.NewResource(job, nil), "", http.StatusOK, nil, 0), nil
}
