package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"devapi/internal/resource"
	"devapi/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

const (
	msgCreated = "Resource created"
	msgUpdated = "Resource updated"
	msgDeleted = "Resource deleted"
)

// developerID parses the :id route param. Anything that is not a positive
// integer cannot name a row and is reported as not found.
func developerID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// developerInput reads name and fav_lang from a JSON, urlencoded or multipart
// body. Each field is decoded on its own: a field that is absent or not a
// string becomes null, and an unreadable body yields no fields at all.
func developerInput(c *fiber.Ctx) service.DeveloperInput {
	if len(c.Body()) == 0 {
		return service.DeveloperInput{}
	}

	ctype := utils.ToLower(utils.UnsafeString(c.Request().Header.ContentType()))
	ctype = utils.ParseVendorSpecificContentType(ctype)

	var field func(key string) *string
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationJSON):
		var raw map[string]any
		if err := c.App().Config().JSONDecoder(c.Body(), &raw); err != nil {
			return service.DeveloperInput{}
		}
		field = func(key string) *string {
			if v, ok := raw[key].(string); ok {
				return &v
			}
			return nil
		}
	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm):
		args := c.Request().PostArgs()
		field = func(key string) *string {
			if !args.Has(key) {
				return nil
			}
			v := string(args.Peek(key))
			return &v
		}
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return service.DeveloperInput{}
		}
		field = func(key string) *string {
			if vals := form.Value[key]; len(vals) > 0 {
				v := vals[0]
				return &v
			}
			return nil
		}
	default:
		return service.DeveloperInput{}
	}

	return service.DeveloperInput{
		Name:    field("name"),
		FavLang: field("fav_lang"),
	}
}

// ListDevelopers godoc
// @Summary List developers
// @Tags developers
// @Produce json
// @Success 200 {array} resource.Developer
// @Router /developers [get]
func ListDevelopers(svc service.DeveloperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(resource.NewDeveloperCollection(items))
	}
}

// CreateDeveloper godoc
// @Summary Create a developer
// @Tags developers
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Param developer body service.DeveloperInput false "Developer fields"
// @Success 200 {object} messageResponse
// @Router /developers [post]
func CreateDeveloper(svc service.DeveloperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := svc.Create(c.UserContext(), developerInput(c)); err != nil {
			return err
		}
		return c.JSON(messageResponse{Message: msgCreated})
	}
}

// GetDeveloper godoc
// @Summary Show a developer
// @Tags developers
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} model.Developer
// @Failure 404 {object} errorPayload
// @Router /developers/{id} [get]
func GetDeveloper(svc service.DeveloperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := developerID(c)
		if !ok {
			return writeNotFound(c)
		}
		dev, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c)
			}
			return err
		}
		return c.JSON(dev)
	}
}

// UpdateDeveloper godoc
// @Summary Replace a developer's name and favorite language
// @Tags developers
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Param id path int true "Developer ID"
// @Param developer body service.DeveloperInput false "Developer fields"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorPayload
// @Router /developers/{id} [put]
// @Router /developers/{id} [patch]
func UpdateDeveloper(svc service.DeveloperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := developerID(c)
		if !ok {
			return writeNotFound(c)
		}
		if _, err := svc.Update(c.UserContext(), id, developerInput(c)); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c)
			}
			return err
		}
		return c.JSON(messageResponse{Message: msgUpdated})
	}
}

// DeleteDeveloper godoc
// @Summary Delete a developer
// @Tags developers
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorPayload
// @Router /developers/{id} [delete]
func DeleteDeveloper(svc service.DeveloperService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := developerID(c)
		if !ok {
			return writeNotFound(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeNotFound(c)
			}
			return err
		}
		return c.JSON(messageResponse{Message: msgDeleted})
	}
}

// ExportDevelopers godoc
// @Summary Export all developers to object storage
// @Tags exports
// @Produce json
// @Success 200 {object} service.SnapshotResult
// @Router /exports/developers [post]
func ExportDevelopers(svc service.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Export(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
