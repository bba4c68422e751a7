package web

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/usecase"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// handleError maps domain errors onto the JSON envelope. Validation errors
// carry a user-facing message; anything unexpected is logged and masked.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		failJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		failJSON(w, http.StatusNotFound, "السجل المطلوب غير موجود")
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		failJSON(w, http.StatusInternalServerError, "حدث خطأ في الخادم")
	}
}

func (s *Server) csrfToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.csrf.Issue(w)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseSubscriptionID(chi.URLParam(r, "subscriptionID"))
	if err != nil {
		failJSON(w, http.StatusBadRequest, "معرّف الخدمة غير صالح")
		return
	}
	if _, ok := s.catalog.Subscription(id); !ok {
		failJSON(w, http.StatusNotFound, "الخدمة المطلوبة غير متوفرة")
		return
	}
	plans := s.catalog.Plans(id)
	if plans == nil {
		plans = []model.Plan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "تعذر قراءة بيانات الطلب")
		return
	}
	if !s.checkCredentials(req.Username, req.Password) {
		failJSON(w, http.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة")
		return
	}
	if _, err := s.auth.Mint(w, req.Username); err != nil {
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم تسجيل الدخول بنجاح", nil)
}

// checkCredentials compares both fields unconditionally so a wrong username
// costs the same as a wrong password.
func (s *Server) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	var passOK bool
	if s.admin.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	}
	return userOK && passOK
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	s.auth.Clear(w)
	okJSON(w, "تم تسجيل الخروج بنجاح", nil)
}

func (s *Server) submitOrder(w http.ResponseWriter, r *http.Request) {
	name, err := s.readScreenshot(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	in := usecase.SubmitOrderInput{
		SubscriptionID: r.FormValue("subscriptionId"),
		PlanKey:        r.FormValue("planKey"),
		AccountName:    r.FormValue("accountName"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		TransferNumber: r.FormValue("transferNumber"),
		Screenshot:     name,
	}
	order, err := s.orders.Submit(r.Context(), in)
	if err != nil {
		if name != "" {
			if rmErr := s.shots.Remove(name); rmErr != nil {
				s.log.Warn().Err(rmErr).Str("file", name).Msg("orphan screenshot cleanup failed")
			}
		}
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم استلام طلبك بنجاح وسيتم مراجعته قريباً", map[string]any{"orderId": order.ID})
}

type suggestionRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Message string `json:"message"`
}

func (s *Server) submitSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "تعذر قراءة بيانات الطلب")
		return
	}
	sg, err := s.suggestions.Submit(r.Context(), req.Name, req.Contact, req.Message)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم استلام اقتراحك بنجاح، شكراً لك", map[string]any{"suggestionId": sg.ID})
}

type inquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Server) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "تعذر قراءة بيانات الطلب")
		return
	}
	q, err := s.inquiries.Submit(r.Context(), usecase.SubmitInquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم استلام استفسارك وسنرد عليك قريباً", map[string]any{"inquiryId": q.ID})
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) listSuggestions(w http.ResponseWriter, r *http.Request) {
	items, err := s.suggestions.List(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if items == nil {
		items = []*model.Suggestion{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) listInquiries(w http.ResponseWriter, r *http.Request) {
	items, err := s.inquiries.List(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if items == nil {
		items = []*model.Inquiry{}
	}
	writeJSON(w, http.StatusOK, items)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "تعذر قراءة بيانات الطلب")
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.orders.UpdateStatus(r.Context(), id, model.OrderStatus(req.Status)); err != nil {
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم تحديث حالة الطلب بنجاح", nil)
}

func (s *Server) updateInquiry(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "تعذر قراءة بيانات الطلب")
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.inquiries.UpdateStatus(r.Context(), id, model.InquiryStatus(req.Status)); err != nil {
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم تحديث حالة الاستفسار بنجاح", nil)
}

func (s *Server) deleteSuggestion(w http.ResponseWriter, r *http.Request) {
	if err := s.suggestions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم حذف الاقتراح بنجاح", nil)
}

func (s *Server) deleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := s.inquiries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	okJSON(w, "تم حذف الاستفسار بنجاح", nil)
}

// screenshot streams a stored upload back to the dashboard. The store
// rejects any name that does not match the generated pattern, so path
// traversal never reaches the filesystem.
func (s *Server) screenshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	f, err := s.shots.Open(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "الملف المطلوب غير موجود")
			return
		}
		s.handleError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}
