package basehdl

// Các handler CRUD dùng chung cho mọi model. Handler cụ thể (review, post,
// account, option) embed BaseHandler và chỉ viết thêm các endpoint nghiệp vụ.

import (
	basemodels "github.com/xiaofeiTM233/FlowHub/internal/api/base/models"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/utility"
	"github.com/gofiber/fiber/v3"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// InsertOne xử lý request tạo mới một document.
// Body request là CreateInput (DTO), được transform sang Model trước khi insert.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		model, err := h.transformCreateInputToModel(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		return HandleResponse(c, data, err)
	})
}

// InsertMany xử lý request tạo mới nhiều document cùng lúc
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var inputs []CreateInput
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			return HandleResponse(c, nil, err)
		}

		models := make([]T, 0, len(inputs))
		for i := range inputs {
			model, err := h.transformCreateInputToModel(&inputs[i])
			if err != nil {
				return HandleResponse(c, nil, err)
			}
			models = append(models, *model)
		}

		data, err := h.BaseService.InsertMany(c.Context(), models)
		return HandleResponse(c, data, err)
	})
}

// FindOne tìm một document theo filter từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		rawOpts, err := h.processMongoOptions(c, true)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		opts, _ := rawOpts.(*mongoopts.FindOneOptions)

		data, err := h.BaseService.FindOne(c.Context(), filter, opts)
		return HandleResponse(c, data, err)
	})
}

// FindOneById tìm một document theo ID trong URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		objID := utility.String2ObjectID(id)

		data, err := h.BaseService.FindOneById(c.Context(), objID)
		return HandleResponse(c, data, err)
	})
}

// FindManyByIds tìm nhiều document theo danh sách ID từ query string.
// Query: ?ids=["id1","id2",...]
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindManyByIds(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var input struct {
			IDs []string `json:"ids" validate:"required"`
		}
		if err := h.ParseRequestQuery(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		objIDs := utility.StringArray2ObjectIDArray(input.IDs)
		data, err := h.BaseService.FindManyByIds(c.Context(), objIDs)
		return HandleResponse(c, data, err)
	})
}

// FindWithPagination tìm document có phân trang.
// Query: ?page=1&limit=10&filter={...}&options={...}
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		rawOpts, err := h.processMongoOptions(c, false)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		opts, _ := rawOpts.(*mongoopts.FindOptions)

		page, limit := h.ParsePagination(c)

		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, opts)
		return HandleResponse(c, data, err)
	})
}

// Find tìm nhiều document theo filter từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		rawOpts, err := h.processMongoOptions(c, false)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		opts, _ := rawOpts.(*mongoopts.FindOptions)

		data, err := h.BaseService.Find(c.Context(), filter, opts)
		return HandleResponse(c, data, err)
	})
}

// UpdateOne cập nhật một document theo filter từ query string.
// Body request là UpdateInput (DTO), chỉ các field có giá trị được cập nhật.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		updateMap, err := h.transformUpdateInputToMap(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		customBson := &utility.CustomBson{}
		update, err := customBson.Set(updateMap)
		if err != nil {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
		}

		data, err := h.BaseService.UpdateOne(c.Context(), filter, update, nil)
		return HandleResponse(c, data, err)
	})
}

// UpdateMany cập nhật nhiều document theo filter từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		updateMap, err := h.transformUpdateInputToMap(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		customBson := &utility.CustomBson{}
		update, err := customBson.Set(updateMap)
		if err != nil {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
		}

		count, err := h.BaseService.UpdateMany(c.Context(), filter, update, nil)
		return HandleResponse(c, fiber.Map{"modifiedCount": count}, err)
	})
}

// UpdateById cập nhật một document theo ID trong URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		objID := utility.String2ObjectID(id)

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		updateMap, err := h.transformUpdateInputToMap(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.UpdateById(c.Context(), objID, updateMap)
		return HandleResponse(c, data, err)
	})
}

// DeleteOne xóa một document theo filter từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		err = h.BaseService.DeleteOne(c.Context(), filter)
		return HandleResponse(c, nil, err)
	})
}

// DeleteMany xóa nhiều document theo filter từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteMany(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		count, err := h.BaseService.DeleteMany(c.Context(), filter)
		return HandleResponse(c, fiber.Map{"deletedCount": count}, err)
	})
}

// DeleteById xóa một document theo ID trong URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		objID := utility.String2ObjectID(id)

		err := h.BaseService.DeleteById(c.Context(), objID)
		return HandleResponse(c, nil, err)
	})
}

// FindOneAndUpdate tìm và cập nhật một document, trả về document sau khi cập nhật
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneAndUpdate(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		updateMap, err := h.transformUpdateInputToMap(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		customBson := &utility.CustomBson{}
		update, err := customBson.Set(updateMap)
		if err != nil {
			return HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
		}

		opts := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
		data, err := h.BaseService.FindOneAndUpdate(c.Context(), filter, update, opts)
		return HandleResponse(c, data, err)
	})
}

// FindOneAndDelete tìm và xóa một document, trả về document đã xóa
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneAndDelete(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.FindOneAndDelete(c.Context(), filter, nil)
		return HandleResponse(c, data, err)
	})
}

// CountDocuments đếm số document theo filter từ query string.
// Query limit (tùy chọn) dùng để tính tổng số trang.
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		return HandleResponse(c, newCountResult(count, utility.P2Int64(c.Query("limit"))), nil)
	})
}

// newCountResult dựng kết quả đếm, tính tổng số trang khi limit > 0
func newCountResult(count, limit int64) basemodels.CountResult {
	result := basemodels.CountResult{TotalCount: count}
	if limit > 0 {
		result.Limit = limit
		result.TotalPage = (count + limit - 1) / limit
	}
	return result
}

// Distinct lấy danh sách giá trị duy nhất của một field.
// Query: ?field=<tên field>&filter={...}
func (h *BaseHandler[T, CreateInput, UpdateInput]) Distinct(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		fieldName := c.Query("field", "")
		if fieldName == "" {
			return HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu tham số field",
				common.StatusBadRequest,
				nil,
			))
		}

		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.Distinct(c.Context(), fieldName, filter)
		return HandleResponse(c, data, err)
	})
}

// Upsert tạo mới hoặc cập nhật một document theo filter từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) Upsert(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}

		model, err := h.transformCreateInputToModel(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.Upsert(c.Context(), filter, *model)
		return HandleResponse(c, data, err)
	})
}

// DocumentExists kiểm tra document có tồn tại theo filter không
func (h *BaseHandler[T, CreateInput, UpdateInput]) DocumentExists(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.processFilter(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		exists, err := h.BaseService.DocumentExists(c.Context(), filter)
		return HandleResponse(c, fiber.Map{"exists": exists}, err)
	})
}

