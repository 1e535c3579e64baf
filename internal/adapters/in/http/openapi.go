package http

import (
	_ "embed"
	"errors"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const openAPIPath = "/openapi.yaml"

//go:embed openapi.yaml
var openAPIDocument []byte

// RequestValidator checks API requests against the embedded OpenAPI document
// before they reach a handler.
type RequestValidator struct {
	router routers.Router
}

func NewRequestValidator() (*RequestValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load openapi document")
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, pkgerrors.Wrap(err, "validate openapi document")
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build openapi router")
	}
	return &RequestValidator{router: router}, nil
}

// Middleware rejects requests whose parameters or body do not match the
// document. Routes the document does not describe are passed through.
func (v *RequestValidator) Middleware() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		// Tokens are checked by the Authenticator.
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := v.router.FindRoute(req)
			var routeErr *routers.RouteError
			if errors.As(err, &routeErr) {
				return next(c)
			}
			if err != nil {
				return err
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", err)
			}
			return next(c)
		}
	}
}

// Document serves the raw OpenAPI document.
func Document(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openAPIDocument)
}

// RegisterDocs mounts the document and the Swagger UI that renders it.
func RegisterDocs(e *echo.Echo) {
	e.GET(openAPIPath, Document)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(openAPIPath)))
}
