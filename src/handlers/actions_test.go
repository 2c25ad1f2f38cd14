package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/repositories/mock"
	"github.com/hoteldesk/chat-admin/src/services"
)

func setupActionsHandler(customers *mock.CustomerRepository, messages *mock.MessageRepository) *ActionsHandler {
	return NewActionsHandler(services.NewCustomerServiceWithRepos(customers, messages))
}

func knownCustomerRepo(key string) *mock.CustomerRepository {
	customers := mock.NewCustomerRepository()
	customers.FindOneFunc = func(ctx context.Context, k string) (*models.Customer, error) {
		if k == key {
			return &models.Customer{Key: key}, nil
		}
		return nil, nil
	}
	customers.SetAIEnabledFunc = func(ctx context.Context, k string, enabled bool) (int64, error) {
		if k == key {
			return 1, nil
		}
		return 0, nil
	}
	return customers
}

func formRequest(target, form string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleToggleAI_Success(t *testing.T) {
	customers := knownCustomerRepo("wa-111")
	handler := setupActionsHandler(customers, mock.NewMessageRepository())

	w, c := createTestContext()
	c.Request = httptest.NewRequest(http.MethodPost, "/toggle-ai/wa-111", nil)
	c.Params = []gin.Param{{Key: "key", Value: "wa-111"}}

	handler.HandleToggleAI(c)

	assertStatusCode(t, w, http.StatusOK)
	response := parseJSON(t, w)

	if response["status"] != "success" {
		t.Errorf("expected status success, got %v", response["status"])
	}
	// flag was unset, so the toggle lands on false
	if enabled, ok := response["ai_enabled"].(bool); !ok || enabled {
		t.Errorf("expected ai_enabled false, got %v", response["ai_enabled"])
	}

	writes := customers.Calls["SetAIEnabled"]
	if len(writes) != 1 {
		t.Fatalf("expected 1 flag write, got %d", len(writes))
	}
	if args, _ := writes[0].([]interface{}); args[1] != false {
		t.Errorf("expected flag written as false, got %v", args[1])
	}
}

func TestHandleToggleAI_UnknownCustomer(t *testing.T) {
	handler := setupActionsHandler(knownCustomerRepo("wa-111"), mock.NewMessageRepository())

	w, c := createTestContext()
	c.Request = httptest.NewRequest(http.MethodPost, "/toggle-ai/nobody", nil)
	c.Params = []gin.Param{{Key: "key", Value: "nobody"}}

	handler.HandleToggleAI(c)

	assertStatusCode(t, w, http.StatusNotFound)
	assertJSONError(t, w, "customer not found")
}

func TestHandleSetAI(t *testing.T) {
	t.Run("explicit false is written as-is", func(t *testing.T) {
		customers := knownCustomerRepo("wa-111")
		handler := setupActionsHandler(customers, mock.NewMessageRepository())

		w, c := createTestContext()
		c.Request = formRequest("/set-ai/wa-111", "enabled=false")
		c.Params = []gin.Param{{Key: "key", Value: "wa-111"}}

		handler.HandleSetAI(c)

		assertStatusCode(t, w, http.StatusOK)
		writes := customers.Calls["SetAIEnabled"]
		if len(writes) != 1 {
			t.Fatalf("expected 1 flag write, got %d", len(writes))
		}
		if args, _ := writes[0].([]interface{}); args[1] != false {
			t.Errorf("expected flag written as false, got %v", args[1])
		}
	})

	t.Run("missing enabled field is rejected", func(t *testing.T) {
		customers := knownCustomerRepo("wa-111")
		handler := setupActionsHandler(customers, mock.NewMessageRepository())

		w, c := createTestContext()
		c.Request = formRequest("/set-ai/wa-111", "")
		c.Params = []gin.Param{{Key: "key", Value: "wa-111"}}

		handler.HandleSetAI(c)

		assertStatusCode(t, w, http.StatusBadRequest)
		if len(customers.Calls["SetAIEnabled"]) != 0 {
			t.Error("expected no flag write on invalid request")
		}
	})

	t.Run("unknown customer maps zero matched rows to 404", func(t *testing.T) {
		handler := setupActionsHandler(knownCustomerRepo("wa-111"), mock.NewMessageRepository())

		w, c := createTestContext()
		c.Request = formRequest("/set-ai/nobody", "enabled=true")
		c.Params = []gin.Param{{Key: "key", Value: "nobody"}}

		handler.HandleSetAI(c)

		assertStatusCode(t, w, http.StatusNotFound)
		assertJSONError(t, w, "customer not found")
	})
}

func TestHandleSendMessage_Success(t *testing.T) {
	messages := mock.NewMessageRepository()
	handler := setupActionsHandler(knownCustomerRepo("wa-111"), messages)

	w, c := createTestContext()
	c.Request = formRequest("/send-message", "customer_key=wa-111&message=An+agent+is+on+the+way")

	handler.HandleSendMessage(c)

	assertStatusCode(t, w, http.StatusOK)
	response := parseJSON(t, w)
	if response["status"] != "success" {
		t.Errorf("expected status success, got %v", response["status"])
	}
	if _, ok := response["timestamp"]; !ok {
		t.Error("expected timestamp in response")
	}

	appends := messages.Calls["Append"]
	if len(appends) != 1 {
		t.Fatalf("expected 1 appended event, got %d", len(appends))
	}
	event, _ := appends[0].(*models.MessageEvent)
	if event.UserMessage != models.AdminSentinel {
		t.Errorf("expected admin-authored event, got user_message %q", event.UserMessage)
	}
	if event.BotResponse != "An agent is on the way" {
		t.Errorf("unexpected message text: %q", event.BotResponse)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Errorf("expected a fresh timestamp, got %v", event.Timestamp)
	}
}

func TestHandleSendMessage_JSONBody(t *testing.T) {
	messages := mock.NewMessageRepository()
	handler := setupActionsHandler(knownCustomerRepo("wa-111"), messages)

	w, c := createTestContext()
	body := `{"customer_key":"wa-111","message":"please reply here"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/send-message", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.HandleSendMessage(c)

	assertStatusCode(t, w, http.StatusOK)
	if len(messages.Calls["Append"]) != 1 {
		t.Errorf("expected 1 appended event, got %d", len(messages.Calls["Append"]))
	}
}

func TestHandleSendMessage_MissingFields(t *testing.T) {
	messages := mock.NewMessageRepository()
	handler := setupActionsHandler(knownCustomerRepo("wa-111"), messages)

	w, c := createTestContext()
	c.Request = formRequest("/send-message", "customer_key=wa-111")

	handler.HandleSendMessage(c)

	assertStatusCode(t, w, http.StatusBadRequest)
	if len(messages.Calls["Append"]) != 0 {
		t.Error("expected no appended event on invalid request")
	}
}

func TestHandleSendMessage_BlankMessage(t *testing.T) {
	messages := mock.NewMessageRepository()
	handler := setupActionsHandler(knownCustomerRepo("wa-111"), messages)

	w, c := createTestContext()
	c.Request = formRequest("/send-message", "customer_key=wa-111&message=+++")

	handler.HandleSendMessage(c)

	assertStatusCode(t, w, http.StatusBadRequest)
	assertJSONError(t, w, "invalid request")
	if len(messages.Calls["Append"]) != 0 {
		t.Error("expected no appended event for blank message")
	}
}

func TestHandleSendMessage_UnknownCustomer(t *testing.T) {
	messages := mock.NewMessageRepository()
	handler := setupActionsHandler(knownCustomerRepo("wa-111"), messages)

	w, c := createTestContext()
	c.Request = formRequest("/send-message", "customer_key=nobody&message=hello")

	handler.HandleSendMessage(c)

	assertStatusCode(t, w, http.StatusNotFound)
	assertJSONError(t, w, "customer not found")
	if len(messages.Calls["Append"]) != 0 {
		t.Error("expected no appended event for unknown customer")
	}
}
