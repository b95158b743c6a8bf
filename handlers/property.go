package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
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

const (
	propertyCachePrefix = "properties"
	listCacheTTL        = 60 * time.Second
)

var propertyUploadLimits = utils.UploadLimits{MaxFiles: 10, MaxSize: 10 << 20}

type PropertyController struct {
	collection *mongo.Collection
	cfg        config.App
}

func NewPropertyController(cfg config.App) *PropertyController {
	collectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if collectionName == "" {
		collectionName = "properties"
	}
	return &PropertyController{
		collection: config.GetCollection(collectionName),
		cfg:        cfg,
	}
}

func (pc *PropertyController) GetProperties(c echo.Context) error {
	ctx := context.Background()

	cacheKey := utils.GenerateQueryCacheKey(propertyCachePrefix, map[string]string{"view": "all"})
	var cached []models.Property
	if ok, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && ok {
		return c.JSON(http.StatusOK, cached)
	}

	properties, err := pc.find(ctx, bson.M{}, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch properties"})
	}

	_ = utils.SetCached(ctx, cacheKey, properties, listCacheTTL)
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) GetPaginatedProperties(c echo.Context) error {
	ctx := context.Background()
	page, limit := parsePageLimit(c.QueryParams())

	total, err := pc.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to count properties"})
	}

	properties, err := pc.find(ctx, bson.M{}, pageOptions(page, limit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch properties"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"properties": properties,
		"pagination": models.NewPropertyPagination(page, limit, total),
	})
}

func (pc *PropertyController) GetFeaturedProperties(c echo.Context) error {
	ctx := context.Background()

	cacheKey := utils.GenerateQueryCacheKey(propertyCachePrefix, map[string]string{"view": "featured"})
	var cached []models.Property
	if ok, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && ok {
		return c.JSON(http.StatusOK, cached)
	}

	properties, err := pc.find(ctx, bson.M{"featured": true}, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch properties"})
	}

	_ = utils.SetCached(ctx, cacheKey, properties, listCacheTTL)
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) GetPropertyByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID format"})
	}

	var property models.Property
	err = pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	ctx := context.Background()

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	property, err := parsePropertyForm(form)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	if err := utils.ValidateStruct(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	count, err := pc.collection.CountDocuments(ctx, bson.M{"propertyId": property.PropertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to check property existence"})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Property with this propertyId already exists"})
	}

	mf, _ := c.MultipartForm()
	images, err := utils.SaveUploadedImages(mf, pc.cfg.UploadDir, "images", propertyUploadLimits)
	if err != nil {
		return uploadErrorResponse(c, err)
	}
	property.Images = storedPropertyPaths(pc.cfg.UploadDir, images)

	property.ID = primitive.NewObjectID()
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	if _, err := pc.collection.InsertOne(ctx, property); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Property with this propertyId already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create property"})
	}

	_ = utils.InvalidateCache(ctx, propertyCachePrefix)
	return c.JSON(http.StatusCreated, property)
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID format"})
	}

	var property models.Property
	err = pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch property"})
	}

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	mf, _ := c.MultipartForm()
	images, err := utils.SaveUploadedImages(mf, pc.cfg.UploadDir, "images", propertyUploadLimits)
	if err != nil {
		return uploadErrorResponse(c, err)
	}

	if err := applyPropertyUpdate(&property, form, storedPropertyPaths(pc.cfg.UploadDir, images)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	if err := utils.ValidateStruct(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	if _, err := pc.collection.ReplaceOne(ctx, bson.M{"_id": id}, property); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Property with this propertyId already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update property"})
	}

	_ = utils.InvalidateCache(ctx, propertyCachePrefix)
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID format"})
	}

	var property models.Property
	err = pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch property"})
	}

	for _, image := range property.Images {
		utils.RemoveImageFile(image)
	}

	if _, err := pc.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to delete property"})
	}

	_ = utils.InvalidateCache(ctx, propertyCachePrefix)
	return c.JSON(http.StatusOK, map[string]string{"message": "Property removed"})
}

func (pc *PropertyController) DeletePropertyImage(c echo.Context) error {
	ctx := context.Background()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid property ID format"})
	}

	var property models.Property
	err = pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch property"})
	}

	index, err := parseImageIndex(c.Param("imageIndex"), len(property.Images))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	utils.RemoveImageFile(property.Images[index])
	property.Images = removeImageAt(property.Images, index)
	property.UpdatedAt = time.Now()

	if _, err := pc.collection.ReplaceOne(ctx, bson.M{"_id": id}, property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update property"})
	}

	_ = utils.InvalidateCache(ctx, propertyCachePrefix)
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) SearchProperties(c echo.Context) error {
	query := buildPropertySearchQuery(c.QueryParams())

	properties, err := pc.find(context.Background(), query, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to search properties"})
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) SearchPropertiesPaginated(c echo.Context) error {
	ctx := context.Background()
	query := buildPropertySearchQuery(c.QueryParams())
	page, limit := parsePageLimit(c.QueryParams())

	total, err := pc.collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to count properties"})
	}

	properties, err := pc.find(ctx, query, pageOptions(page, limit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to search properties"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"properties": properties,
		"pagination": models.NewPropertyPagination(page, limit, total),
	})
}

func (pc *PropertyController) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Property, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = pc.collection.Find(ctx, query, opts)
	} else {
		cursor, err = pc.collection.Find(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return properties, cursor.Err()
}

// parsePropertyForm builds a new property from the multipart form fields.
// featured is true only for the literal string "true"; features is a JSON
// array of strings when present.
func parsePropertyForm(form url.Values) (models.Property, error) {
	property := models.Property{
		PropertyID:   form.Get("propertyId"),
		Title:        form.Get("title"),
		Description:  form.Get("description"),
		Location:     form.Get("location"),
		HouseNumber:  form.Get("houseNumber"),
		BlockNumber:  form.Get("blockNumber"),
		PropertyType: form.Get("propertyType"),
		AreaSize:     form.Get("areaSize"),
		Featured:     form.Get("featured") == "true",
		Images:       []string{},
		Features:     []string{},
	}

	if err := parseFloatField(form, "price", &property.Price); err != nil {
		return property, err
	}
	if err := parseIntField(form, "bedrooms", &property.Bedrooms); err != nil {
		return property, err
	}
	if err := parseIntField(form, "bathrooms", &property.Bathrooms); err != nil {
		return property, err
	}
	if err := parseIntField(form, "garage", &property.Garage); err != nil {
		return property, err
	}
	if err := parseIntField(form, "yearBuilt", &property.YearBuilt); err != nil {
		return property, err
	}

	if raw := form.Get("features"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &property.Features); err != nil {
			return property, errors.New("Invalid features format")
		}
	}

	return property, nil
}

// applyPropertyUpdate merges the form fields into the existing property.
// Only truthy values overwrite: empty strings and zero numbers keep the
// stored value, and featured can only be switched on, never off. Newly
// uploaded images are appended to the existing list.
func applyPropertyUpdate(property *models.Property, form url.Values, newImages []string) error {
	if v := form.Get("propertyId"); v != "" {
		property.PropertyID = v
	}
	if v := form.Get("title"); v != "" {
		property.Title = v
	}
	if v := form.Get("description"); v != "" {
		property.Description = v
	}
	if v := form.Get("location"); v != "" {
		property.Location = v
	}
	if v := form.Get("houseNumber"); v != "" {
		property.HouseNumber = v
	}
	if v := form.Get("blockNumber"); v != "" {
		property.BlockNumber = v
	}
	if v := form.Get("propertyType"); v != "" {
		property.PropertyType = v
	}
	if v := form.Get("areaSize"); v != "" {
		property.AreaSize = v
	}

	var price float64
	if err := parseFloatField(form, "price", &price); err != nil {
		return err
	}
	if price != 0 {
		property.Price = price
	}

	var bedrooms, bathrooms, garage, yearBuilt int
	if err := parseIntField(form, "bedrooms", &bedrooms); err != nil {
		return err
	}
	if bedrooms != 0 {
		property.Bedrooms = bedrooms
	}
	if err := parseIntField(form, "bathrooms", &bathrooms); err != nil {
		return err
	}
	if bathrooms != 0 {
		property.Bathrooms = bathrooms
	}
	if err := parseIntField(form, "garage", &garage); err != nil {
		return err
	}
	if garage != 0 {
		property.Garage = garage
	}
	if err := parseIntField(form, "yearBuilt", &yearBuilt); err != nil {
		return err
	}
	if yearBuilt != 0 {
		property.YearBuilt = yearBuilt
	}

	property.Featured = form.Get("featured") == "true" || property.Featured

	if raw := form.Get("features"); raw != "" {
		var features []string
		if err := json.Unmarshal([]byte(raw), &features); err != nil {
			return errors.New("Invalid features format")
		}
		property.Features = features
	}

	if len(newImages) > 0 {
		property.Images = append(property.Images, newImages...)
	}

	property.UpdatedAt = time.Now()
	return nil
}

func buildPropertySearchQuery(q url.Values) bson.M {
	query := bson.M{}

	if location := q.Get("location"); location != "" {
		query["location"] = bson.M{"$regex": location, "$options": "i"}
	}
	if propertyType := q.Get("propertyType"); propertyType != "" {
		query["propertyType"] = propertyType
	}
	if bedrooms := q.Get("bedrooms"); bedrooms != "" {
		if num, err := strconv.Atoi(bedrooms); err == nil {
			query["bedrooms"] = bson.M{"$gte": num}
		}
	}
	if bathrooms := q.Get("bathrooms"); bathrooms != "" {
		if num, err := strconv.Atoi(bathrooms); err == nil {
			query["bathrooms"] = bson.M{"$gte": num}
		}
	}

	price := bson.M{}
	if minPrice := q.Get("minPrice"); minPrice != "" {
		if num, err := strconv.Atoi(minPrice); err == nil {
			price["$gte"] = num
		}
	}
	if maxPrice := q.Get("maxPrice"); maxPrice != "" {
		if num, err := strconv.Atoi(maxPrice); err == nil {
			price["$lte"] = num
		}
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return query
}

func parsePageLimit(q url.Values) (int, int) {
	page := 1
	limit := 10
	if p := q.Get("page"); p != "" {
		if num, err := strconv.Atoi(p); err == nil && num > 0 {
			page = num
		}
	}
	if l := q.Get("limit"); l != "" {
		if num, err := strconv.Atoi(l); err == nil && num > 0 {
			limit = num
		}
	}
	return page, limit
}

func pageOptions(page, limit int) *options.FindOptions {
	skip := (page - 1) * limit
	return options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})
}

func parseFloatField(form url.Values, name string, dst *float64) error {
	v := form.Get(name)
	if v == "" {
		return nil
	}
	num, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.New("Invalid value for " + name)
	}
	*dst = num
	return nil
}

func parseIntField(form url.Values, name string, dst *int) error {
	v := form.Get(name)
	if v == "" {
		return nil
	}
	num, err := strconv.Atoi(v)
	if err != nil {
		return errors.New("Invalid value for " + name)
	}
	*dst = num
	return nil
}

// parseImageIndex resolves an imageIndex path param against the current
// image list; anything non-numeric or out of bounds is an error.
func parseImageIndex(raw string, length int) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 || index >= length {
		return 0, errors.New("Invalid image index")
	}
	return index, nil
}

func removeImageAt(images []string, index int) []string {
	return append(images[:index], images[index+1:]...)
}

func storedPropertyPaths(uploadDir string, names []string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.ToSlash(filepath.Join(uploadDir, name)))
	}
	return paths
}

func uploadErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, utils.ErrTooManyFiles), errors.Is(err, utils.ErrFileTooLarge), errors.Is(err, utils.ErrNotImage):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to store uploaded images"})
	}
}
