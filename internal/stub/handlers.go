package stub

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"zocial/models"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *fiber.Ctx) error {
	req := new(credentialsRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var user userRecord
	if err := s.db.First(&user, "email = ?", req.Email).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}

	return s.respondWithSession(c, fiber.StatusOK, user)
}

func (s *Server) register(c *fiber.Ctx) error {
	req := new(credentialsRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Name, email and password are required",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create account",
		})
	}

	user := userRecord{Name: req.Name, Email: req.Email, Password: string(hash)}
	if err := s.db.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Email already registered",
		})
	}

	return s.respondWithSession(c, fiber.StatusCreated, user)
}

func (s *Server) respondWithSession(c *fiber.Ctx, status int, user userRecord) error {
	token, err := issueToken(s.secret, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to issue token",
		})
	}
	return c.Status(status).JSON(models.Session{Token: token, User: user.toUser()})
}

func (s *Server) listPosts(c *fiber.Ctx) error {
	var records []postRecord
	if err := s.db.Preload("Author").Order("created_at desc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch posts",
		})
	}

	posts := make([]models.Post, 0, len(records))
	for _, r := range records {
		posts = append(posts, r.toPost())
	}
	// Wrapped shape, as the deployed backend returns it.
	return c.JSON(fiber.Map{"posts": posts})
}

func (s *Server) createPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	content := c.FormValue("content")
	image := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		image = "/uploads/" + file.Filename
	}
	if content == "" && image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Content or image is required",
		})
	}

	record := postRecord{
		ID:        uuid.NewString(),
		AuthorID:  userID,
		Content:   content,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create post",
		})
	}

	s.db.Preload("Author").First(&record, "id = ?", record.ID)
	return c.Status(fiber.StatusCreated).JSON(record.toPost())
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	var records []userRecord
	if err := s.db.Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
		})
	}
	users := make([]models.User, 0, len(records))
	for _, r := range records {
		users = append(users, r.toUser())
	}
	return c.JSON(users)
}

func (s *Server) deleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.db.Delete(&userRecord{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete user",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	var records []productRecord
	if err := s.db.Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch products",
		})
	}
	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toProduct())
	}
	return c.JSON(products)
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	var p models.Product
	if err := c.BodyParser(&p); err != nil || p.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product name is required",
		})
	}

	record := productRecord{ID: uuid.NewString(), Name: p.Name, Price: p.Price, Image: p.Image}
	if err := s.db.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(record.toProduct())
}

func (s *Server) deleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.db.Delete(&productRecord{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete product",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) listOrders(c *fiber.Ctx) error {
	var records []orderRecord
	if err := s.db.Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch orders",
		})
	}
	orders := make([]models.Order, 0, len(records))
	for _, r := range records {
		orders = append(orders, r.toOrder())
	}
	return c.JSON(orders)
}

func (s *Server) createOrder(c *fiber.Ctx) error {
	var o models.Order
	if err := c.BodyParser(&o); err != nil || o.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id is required",
		})
	}

	record := orderRecord{
		ID:        uuid.NewString(),
		ProductID: o.ProductID,
		Buyer:     o.Buyer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to place order",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(record.toOrder())
}
