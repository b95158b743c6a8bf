package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Taimur-DevOps/rep-backend/config"
	"github.com/Taimur-DevOps/rep-backend/models"
	"github.com/Taimur-DevOps/rep-backend/utils"
)

var userUploadLimits = utils.UploadLimits{MaxFiles: 5, MaxSize: 5 << 20}

// password never leaves the store on read paths.
var userProjection = bson.M{"password": 0}

type UserController struct {
	collection *mongo.Collection
	cfg        config.App
}

func NewUserController(cfg config.App) *UserController {
	collectionName := os.Getenv("MONGODB_COLLECTION_USERS")
	if collectionName == "" {
		collectionName = "users"
	}
	return &UserController{
		collection: config.GetCollection(collectionName),
		cfg:        cfg,
	}
}

func (uc *UserController) GetUsers(c echo.Context) error {
	users, err := uc.find(context.Background(), bson.M{"isActive": true}, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch users"})
	}
	return c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetUsersPaginated(c echo.Context) error {
	ctx := context.Background()
	page, limit := parsePageLimit(c.QueryParams())

	total, err := uc.collection.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to count users"})
	}

	users, err := uc.find(ctx, bson.M{"isActive": true}, pageOptions(page, limit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch users"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users":      users,
		"pagination": models.NewUserPagination(page, limit, total),
	})
}

// GetUserByID does not filter on isActive: deactivated users stay directly
// addressable even though they never show up in lists or search.
func (uc *UserController) GetUserByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid user ID format"})
	}

	var user models.User
	err = uc.collection.FindOne(context.Background(), bson.M{"_id": id},
		options.FindOne().SetProjection(userProjection)).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch user"})
	}
	return c.JSON(http.StatusOK, user)
}

func (uc *UserController) CreateUser(c echo.Context) error {
	ctx := context.Background()

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	email := normalizeEmail(form.Get("email"))

	count, err := uc.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to check user existence"})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "User with this email already exists"})
	}

	user := models.User{
		Name:       strings.TrimSpace(form.Get("name")),
		Email:      email,
		Phone:      strings.TrimSpace(form.Get("phone")),
		Role:       form.Get("role"),
		Department: form.Get("department"),
		Bio:        form.Get("bio"),
		Skills:     []string{},
		Images:     []string{},
		IsActive:   true,
		DateJoined: time.Now(),
	}
	if user.Role == "" {
		user.Role = models.DefaultRole
	}
	if user.Department == "" {
		user.Department = models.DefaultDepartment
	}
	if skills, ok := form["skills"]; ok {
		user.Skills = parseSkills(skills)
	}

	if err := utils.ValidateStruct(&user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	if password := form.Get("password"); password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to hash password"})
		}
		user.Password = hashed
	}

	mf, _ := c.MultipartForm()
	images, err := utils.SaveUploadedImages(mf, filepath.Join(uc.cfg.UploadDir, "users"), "user", userUploadLimits)
	if err != nil {
		return uploadErrorResponse(c, err)
	}
	user.Images = storedUserPaths(images)

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if _, err := uc.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "User with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create user"})
	}

	return c.JSON(http.StatusCreated, user)
}

func (uc *UserController) UpdateUser(c echo.Context) error {
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid user ID format"})
	}

	var user models.User
	err = uc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch user"})
	}

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if email := normalizeEmail(form.Get("email")); email != "" && email != user.Email {
		count, err := uc.collection.CountDocuments(ctx, bson.M{"email": email, "_id": bson.M{"$ne": id}})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to check user existence"})
		}
		if count > 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "User with this email already exists"})
		}
		user.Email = email
	}

	if v := form.Get("name"); v != "" {
		user.Name = strings.TrimSpace(v)
	}
	if v := form.Get("phone"); v != "" {
		user.Phone = strings.TrimSpace(v)
	}
	if v := form.Get("role"); v != "" {
		user.Role = v
	}
	if v := form.Get("department"); v != "" {
		user.Department = v
	}
	if v := form.Get("bio"); v != "" {
		user.Bio = v
	}
	if skills, ok := form["skills"]; ok {
		user.Skills = parseSkills(skills)
	}

	if err := utils.ValidateStruct(&user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	if password := form.Get("password"); password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to hash password"})
		}
		user.Password = hashed
	}

	mf, _ := c.MultipartForm()
	images, err := utils.SaveUploadedImages(mf, filepath.Join(uc.cfg.UploadDir, "users"), "user", userUploadLimits)
	if err != nil {
		return uploadErrorResponse(c, err)
	}
	if len(images) > 0 {
		user.Images = append(user.Images, storedUserPaths(images)...)
	}

	user.UpdatedAt = time.Now()

	if _, err := uc.collection.ReplaceOne(ctx, bson.M{"_id": id}, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "User with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update user"})
	}

	return c.JSON(http.StatusOK, user)
}

func (uc *UserController) DeleteUser(c echo.Context) error {
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid user ID format"})
	}

	var user models.User
	err = uc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch user"})
	}

	for _, image := range user.Images {
		utils.RemoveImageFile(image)
	}

	if _, err := uc.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to delete user"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (uc *UserController) DeleteUserImage(c echo.Context) error {
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid user ID format"})
	}

	var user models.User
	err = uc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch user"})
	}

	index, err := parseImageIndex(c.Param("imageIndex"), len(user.Images))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	utils.RemoveImageFile(user.Images[index])
	user.Images = removeImageAt(user.Images, index)
	user.UpdatedAt = time.Now()

	if _, err := uc.collection.ReplaceOne(ctx, bson.M{"_id": id}, user); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update user"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Image deleted successfully",
		"images":  user.Images,
	})
}

func (uc *UserController) SearchUsers(c echo.Context) error {
	ctx := context.Background()

	q := c.QueryParam("q")
	role := c.QueryParam("role")
	department := c.QueryParam("department")
	page, limit := parsePageLimit(c.QueryParams())

	query := buildUserSearchQuery(q, role, department)

	total, err := uc.collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to count users"})
	}

	users, err := uc.find(ctx, query, pageOptions(page, limit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to search users"})
	}

	if role == "" {
		role = "all"
	}
	if department == "" {
		department = "all"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
		"searchInfo": models.SearchInfo{
			Query:        q,
			Role:         role,
			Department:   department,
			TotalResults: total,
		},
		"pagination": models.NewUserPagination(page, limit, total),
	})
}

func (uc *UserController) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.User, error) {
	if opts == nil {
		opts = options.Find()
	}
	opts.SetProjection(userProjection)

	cursor, err := uc.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, cursor.Err()
}

// buildUserSearchQuery matches q case-insensitively against name, email, bio
// and any skill entry. role and department filter exactly; "all" disables the
// filter. Only active users are searchable.
func buildUserSearchQuery(q, role, department string) bson.M {
	query := bson.M{"isActive": true}

	if q != "" {
		regex := bson.M{"$regex": q, "$options": "i"}
		query["$or"] = []bson.M{
			{"name": regex},
			{"email": regex},
			{"bio": regex},
			{"skills": bson.M{"$in": []primitive.Regex{{Pattern: q, Options: "i"}}}},
		}
	}
	if role != "" && role != "all" {
		query["role"] = role
	}
	if department != "" && department != "all" {
		query["department"] = department
	}

	return query
}

// parseSkills accepts either repeated form values (already a list) or a
// single value holding a JSON array. A single value that fails to parse is
// kept as a one-element list.
func parseSkills(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	if len(values) > 1 {
		return values
	}

	var skills []string
	if err := json.Unmarshal([]byte(values[0]), &skills); err != nil {
		return []string{values[0]}
	}
	return skills
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func storedUserPaths(names []string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, "/uploads/users/"+name)
	}
	return paths
}
