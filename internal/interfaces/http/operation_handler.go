package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// documentTypes traduce el segmento de ruta al tipo de documento.
var documentTypes = map[string]entity.DocumentType{
	"receipts":    entity.DocReceipt,
	"deliveries":  entity.DocDelivery,
	"transfers":   entity.DocTransfer,
	"adjustments": entity.DocAdjustment,
}

// OperationHandler maneja recepciones, despachos, traslados y ajustes (protegido).
type OperationHandler struct {
	uc *operation.UseCase
	errorMapper
}

// NewOperationHandler construye el handler.
func NewOperationHandler(uc *operation.UseCase, errs errorMapper) *OperationHandler {
	return &OperationHandler{uc: uc, errorMapper: errs}
}

func docType(c *fiber.Ctx) (entity.DocumentType, error) {
	t, ok := documentTypes[c.Params("type")]
	if !ok {
		return "", fmt.Errorf("%w: tipo de operación %q", domain.ErrNotFound, c.Params("type"))
	}
	return t, nil
}

// Create godoc
// @Summary      Crear documento de operación en DRAFT
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  path  string                      true  "receipts | deliveries | transfers | adjustments"
// @Param        body  body  dto.CreateDocumentRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/operations/{type} [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	t, err := docType(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines := make([]operation.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, operation.LineInput{ProductID: l.ProductID, Quantity: l.Quantity, CountedQty: l.CountedQty})
	}
	doc, err := h.uc.Create(c.UserContext(), GetActor(c), operation.CreateDocumentInput{
		Type:           t,
		LocationID:     in.LocationID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		PartnerName:    in.PartnerName,
		Notes:          in.Notes,
		Reason:         in.Reason,
		ScheduledDate:  in.ScheduledDate,
		Lines:          lines,
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// List godoc
// @Summary      Listar documentos de un tipo
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type         path   string  true   "receipts | deliveries | transfers | adjustments"
// @Param        status       query  string  false  "DRAFT | WAITING | READY | DONE | CANCELLED"
// @Param        location_id  query  string  false  "Ubicación (origen, destino o propia)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.DocumentListResponse
// @Router       /api/operations/{type} [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	t, err := docType(c)
	if err != nil {
		return h.respond(c, err)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	docs, total, err := h.uc.List(c.UserContext(), repository.DocumentFilter{
		Type:       t,
		Status:     entity.DocumentStatus(c.Query("status")),
		LocationID: c.Query("location_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return h.respond(c, err)
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, toDocumentResponse(d))
	}
	return c.JSON(dto.DocumentListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}})
}

// GetByID godoc
// @Summary      Obtener documento con sus líneas
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations/{type}/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	t, err := docType(c)
	if err != nil {
		return h.respond(c, err)
	}
	doc, err := h.uc.Get(c.UserContext(), t, c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// Validate godoc
// @Summary      Validar documento (aplica el stock)
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/operations/{type}/{id}/validate [post]
func (h *OperationHandler) Validate(c *fiber.Ctx) error {
	t, err := docType(c)
	if err != nil {
		return h.respond(c, err)
	}
	doc, err := h.uc.Validate(c.UserContext(), GetActor(c), t, c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// Cancel godoc
// @Summary      Cancelar documento
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{type}/{id}/cancel [post]
func (h *OperationHandler) Cancel(c *fiber.Ctx) error {
	t, err := docType(c)
	if err != nil {
		return h.respond(c, err)
	}
	doc, err := h.uc.Cancel(c.UserContext(), t, c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// PDF godoc
// @Summary      Descargar comprobante PDF del documento
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        type  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations/{type}/{id}/pdf [get]
func (h *OperationHandler) PDF(c *fiber.Ctx) error {
	t, err := docType(c)
	if err != nil {
		return h.respond(c, err)
	}
	data, filename, err := h.uc.Slip(c.UserContext(), t, c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	lines := make([]dto.DocumentLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.DocumentLineResponse{
			ID:         l.ID,
			LineNo:     l.LineNo,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			DoneQty:    l.DoneQty,
			SystemQty:  l.SystemQty,
			CountedQty: l.CountedQty,
			Difference: l.Difference,
		})
	}
	return dto.DocumentResponse{
		ID:             d.ID,
		Type:           string(d.Type),
		Reference:      d.Reference,
		Status:         string(d.Status),
		LocationID:     d.LocationID,
		FromLocationID: d.FromLocationID,
		ToLocationID:   d.ToLocationID,
		PartnerName:    d.PartnerName,
		Notes:          d.Notes,
		Reason:         d.Reason,
		UserID:         d.UserID,
		ScheduledDate:  d.ScheduledDate,
		ValidatedAt:    d.ValidatedAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Lines:          lines,
	}
}
