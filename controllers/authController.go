package controllers

import (
	"net/mail"
	"time"

	"github.com/jlvilasoler/hashrate/database"
	"github.com/jlvilasoler/hashrate/middlewares"
	"github.com/jlvilasoler/hashrate/models"

	"github.com/gofiber/fiber/v2"
)

func Register(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middlewares.Envelope("invalid email format"))
	}

	var mailExist models.User
	database.DB.Where("email = ?", data["email"]).First(&mailExist)
	if mailExist.Email != "" {
		return c.Status(fiber.StatusBadRequest).JSON(middlewares.Envelope("email already exists"))
	}

	if data["password"] == "" || data["password"] != data["password_confirm"] {
		return c.Status(fiber.StatusBadRequest).JSON(middlewares.Envelope("passwords do not match"))
	}

	user := models.User{
		FirstName: data["first_name"],
		LastName:  data["last_name"],
		Email:     data["email"],
	}
	user.SetPassword(data["password"])

	tx := database.DB.Begin()
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(middlewares.Envelope("could not create user"))
	}
	tx.Commit()

	return c.Status(fiber.StatusCreated).JSON(user)
}

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middlewares.Envelope("invalid email format"))
	}

	var user models.User
	database.DB.Where("email = ?", data["email"]).First(&user)
	if user.Id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middlewares.Envelope("invalid credentials"))
	}

	if err := user.ComparePassword(data["password"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middlewares.Envelope("invalid credentials"))
	}

	token, err := middlewares.GenerateJWT(user.Id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(middlewares.Envelope("could not issue token"))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
