package groups

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/huddleapp/huddle/pkg/huddle/auth"
	"github.com/huddleapp/huddle/pkg/huddle/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testTokens = auth.NewTokenService("test-secret")

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Username:     username,
		DisplayName:  "Test User",
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	handler.RegisterPublicRoutes(r.Group("/groups"))
	handler.RegisterRoutes(r.Group("/groups", auth.Middleware(testTokens)))

	return r
}

func sessionCookie(user models.User) *http.Cookie {
	token, _ := testTokens.Generate(user.ID, user.Username, user.DisplayName)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func TestCreateGroup(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	body, _ := json.Marshal(CreateGroupRequest{
		Name:        "Book Club",
		Description: "Readers",
	})

	req, _ := http.NewRequest("POST", "/groups/create", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(user))
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response GroupResponse
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.Name != "Book Club" {
		t.Errorf("Expected name 'Book Club', got %s", response.Name)
	}
	if response.Role != "admin" {
		t.Errorf("Expected role 'admin', got %s", response.Role)
	}

	var membership models.GroupMembership
	if err := db.Where("user_id = ? AND group_id = ?", user.ID, response.ID).First(&membership).Error; err != nil {
		t.Fatalf("Expected creator membership to exist: %v", err)
	}
	if membership.Role != models.GroupRoleAdmin {
		t.Errorf("Expected creator to be admin, got %s", membership.Role)
	}
}

func TestCreateGroupMissingDescription(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	body := []byte(`{"name": "Book Club"}`)
	req, _ := http.NewRequest("POST", "/groups/create", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(user))
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestListAllGroupsIsPublic(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	db.Create(&models.Group{Name: "Book Club", Description: "Readers"})
	db.Create(&models.Group{Name: "Chess Club", Description: "Players"})

	req, _ := http.NewRequest("GET", "/groups", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var groups []GroupResponse
	json.Unmarshal(resp.Body.Bytes(), &groups)

	if len(groups) != 2 {
		t.Errorf("Expected 2 groups, got %d", len(groups))
	}
}

func TestListMine(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	mine := models.Group{Name: "Book Club", Description: "Readers"}
	db.Create(&mine)
	db.Create(&models.Group{Name: "Chess Club", Description: "Players"})
	db.Create(&models.GroupMembership{UserID: user.ID, GroupID: mine.ID, Role: models.GroupRoleMember})

	req, _ := http.NewRequest("GET", "/groups/user", nil)
	req.AddCookie(sessionCookie(user))
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var groups []GroupResponse
	json.Unmarshal(resp.Body.Bytes(), &groups)

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	if groups[0].Name != "Book Club" {
		t.Errorf("Expected 'Book Club', got %s", groups[0].Name)
	}
}

func TestListMineRequiresSession(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/groups/user", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func joinGroup(router *gin.Engine, user models.User, groupID uint) *httptest.ResponseRecorder {
	body, _ := json.Marshal(MembershipRequest{GroupID: groupID})
	req, _ := http.NewRequest("POST", "/groups/join", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func leaveGroup(router *gin.Engine, user models.User, groupID uint) *httptest.ResponseRecorder {
	body, _ := json.Marshal(MembershipRequest{GroupID: groupID})
	req, _ := http.NewRequest("POST", "/groups/leave", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJoinGroup(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	group := models.Group{Name: "Book Club", Description: "Readers"}
	db.Create(&group)

	resp := joinGroup(router, user, group.ID)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.GroupMembership{}).Where("user_id = ? AND group_id = ?", user.ID, group.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 membership, got %d", count)
	}
}

func TestJoinGroupAlreadyMember(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	group := models.Group{Name: "Book Club", Description: "Readers"}
	db.Create(&group)
	db.Create(&models.GroupMembership{UserID: user.ID, GroupID: group.ID, Role: models.GroupRoleMember})

	resp := joinGroup(router, user, group.ID)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.GroupMembership{}).Where("user_id = ? AND group_id = ?", user.ID, group.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected membership to be unchanged, got %d rows", count)
	}
}

func TestJoinGroupNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	resp := joinGroup(router, user, 999)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestLeaveGroup(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	group := models.Group{Name: "Book Club", Description: "Readers"}
	db.Create(&group)
	db.Create(&models.GroupMembership{UserID: user.ID, GroupID: group.ID, Role: models.GroupRoleMember})

	resp := leaveGroup(router, user, group.ID)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.GroupMembership{}).Where("user_id = ? AND group_id = ?", user.ID, group.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected membership to be removed, got %d rows", count)
	}
}

func TestLeaveGroupNotMember(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	group := models.Group{Name: "Book Club", Description: "Readers"}
	db.Create(&group)

	resp := leaveGroup(router, user, group.ID)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestLeaveGroupNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	resp := leaveGroup(router, user, 999)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestCannotLeaveAsLastAdmin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestUser(t, db, "alice")

	group := models.Group{Name: "Book Club", Description: "Readers"}
	db.Create(&group)
	db.Create(&models.GroupMembership{UserID: admin.ID, GroupID: group.ID, Role: models.GroupRoleAdmin})

	resp := leaveGroup(router, admin, group.ID)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.GroupMembership{}).Where("group_id = ?", group.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected membership to be unchanged, got %d rows", count)
	}
}

func TestAdminCanLeaveWhenAnotherAdminRemains(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestUser(t, db, "alice")
	other := createTestUser(t, db, "bob")

	group := models.Group{Name: "Book Club", Description: "Readers"}
	db.Create(&group)
	db.Create(&models.GroupMembership{UserID: admin.ID, GroupID: group.ID, Role: models.GroupRoleAdmin})
	db.Create(&models.GroupMembership{UserID: other.ID, GroupID: group.ID, Role: models.GroupRoleAdmin})

	resp := leaveGroup(router, admin, group.ID)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}
