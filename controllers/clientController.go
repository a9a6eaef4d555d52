package controllers

import (
	"errors"
	"strconv"

	"github.com/jlvilasoler/hashrate/database"
	"github.com/jlvilasoler/hashrate/middlewares"
	"github.com/jlvilasoler/hashrate/models"
	"github.com/jlvilasoler/hashrate/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const msgDuplicateCode = "Ya existe un cliente con ese código"

type ClientCreateInput struct {
	Code    string `json:"code" validate:"required,max=50"`
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
	City    string `json:"city" validate:"omitempty,max=100"`
}

type ClientUpdateInput struct {
	Code    *string `json:"code" validate:"omitempty,min=1,max=50"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	City    *string `json:"city" validate:"omitempty,max=100"`
}

// GetClients returns the full directory ordered by code ascending.
func GetClients(c *fiber.Ctx) error {
	clients := []models.Client{}
	if err := database.DB.Order("code ASC").Find(&clients).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"clients": clients})
}

func CreateClient(c *fiber.Ctx) error {
	var input ClientCreateInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	utils.NormalizeDTO(&input)
	if err := middlewares.ValidateStruct(&input); err != nil {
		return err
	}

	client := models.Client{
		Code:    input.Code,
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		City:    input.City,
	}

	tx := database.DB.Begin()
	if err := tx.Create(&client).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(middlewares.Envelope(msgDuplicateCode))
		}
		return err
	}
	tx.Commit()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

func UpdateClient(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var input ClientUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	utils.NormalizePtrDTO(&input)
	if err := middlewares.ValidateStruct(&input); err != nil {
		return err
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(middlewares.Envelope("Cliente no encontrado"))
		}
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) == 0 {
		// Zero supplied fields: a no-op fetch-by-id.
		return c.JSON(fiber.Map{"client": client})
	}

	tx := database.DB.Begin()
	if err := tx.Model(&client).Updates(updates).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(middlewares.Envelope(msgDuplicateCode))
		}
		return err
	}
	tx.Commit()

	if err := database.DB.First(&client, id).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"client": client})
}
