package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/alimikegami/product-catalog-service/internal/dto"
	"github.com/alimikegami/product-catalog-service/internal/service"
	pkgdto "github.com/alimikegami/product-catalog-service/pkg/dto"
	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/alimikegami/product-catalog-service/pkg/response"
	"github.com/alimikegami/product-catalog-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	productPart = "producto"
	filePart    = "file"
)

type ProductController struct {
	service       service.ProductService
	maxUploadSize int64
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc, maxUploadSize int64) {
	c := ProductController{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
	e.GET("/productos", c.GetProducts)
	e.POST("/productos", c.AddProduct, isLoggedIn)
	e.GET("/productos/downloadFile/:fileCode", c.DownloadFile)
	e.GET("/productos/:id", c.GetProductByID)
	e.PUT("/productos/:id", c.UpdateProduct, isLoggedIn)
	e.DELETE("/productos/:id", c.DeleteProduct, isLoggedIn)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}

	page, err := optionalInt(e.QueryParam("page"))
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}
	size, err := optionalInt(e.QueryParam("size"))
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}
	filter.Page = page
	filter.Size = size

	products, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products", products)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	ctx := actorContext(e, "AddProduct")
	e.Request().Body = http.MaxBytesReader(e.Response(), e.Request().Body, c.maxUploadSize)

	form, err := e.MultipartForm()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return response.WriteErrorResponse(e, errs.ErrFileSizeExceedingLimit, nil)
		}
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}
	defer form.RemoveAll()

	payload, err := readProductPart(form)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	var upload *dto.FileUpload
	if headers := form.File[filePart]; len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
			return response.WriteErrorResponseWithData(e, errs.ErrIOFault, nil, payload)
		}
		defer f.Close()

		upload = &dto.FileUpload{
			OriginalName: headers[0].Filename,
			Content:      f,
		}
	}

	res, err := c.service.AddProduct(ctx, payload, upload)
	if err != nil {
		return response.WriteErrorResponseWithData(e, err, nil, payload)
	}

	return response.WriteCreatedResponse(e, "product created", res)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	ctx := actorContext(e, "UpdateProduct")
	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload.ID = id
	res, err := c.service.UpdateProduct(ctx, payload)
	if err != nil {
		return response.WriteErrorResponseWithData(e, err, nil, payload)
	}

	return response.WriteSuccessResponse(e, "product updated", res)
}

func (c *ProductController) GetProductByID(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrProductNotFound, nil)
	}

	res, err := c.service.GetProductByID(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrProductNotFound, nil)
	}

	if err := c.service.DeleteProduct(actorContext(e, "DeleteProduct"), id); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product deleted", nil)
}

func (c *ProductController) DownloadFile(e echo.Context) error {
	fileCode := e.Param("fileCode")

	f, info, err := c.service.DownloadFile(e.Request().Context(), fileCode)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	defer f.Close()

	res := e.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEOctetStream)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileCode))

	http.ServeContent(res, e.Request(), fileCode, info.ModTime(), f)

	return nil
}

// actorContext attaches the caller's token claims to the request logger and
// records the mutation being attempted.
func actorContext(e echo.Context, component string) context.Context {
	ctx := e.Request().Context()
	userID, role, externalID := utils.ExtractTokenUser(e)

	logger := log.Ctx(ctx).With().
		Int64("user_id", userID).
		Str("role", role).
		Str("user_external_id", externalID).
		Logger()
	logger.Info().Str("component", component).Str("method", e.Request().Method).Str("path", e.Request().URL.Path).Msg("product mutation")

	return logger.WithContext(ctx)
}

// readProductPart decodes the "producto" part, sent either as a plain form
// field or as a file part holding JSON.
func readProductPart(form *multipart.Form) (payload dto.ProductRequest, err error) {
	if values := form.Value[productPart]; len(values) > 0 {
		err = json.Unmarshal([]byte(values[0]), &payload)
		return
	}

	headers := form.File[productPart]
	if len(headers) == 0 {
		return payload, fmt.Errorf("missing %q part", productPart)
	}

	f, err := headers[0].Open()
	if err != nil {
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return
	}

	err = json.Unmarshal(raw, &payload)
	return
}

func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
