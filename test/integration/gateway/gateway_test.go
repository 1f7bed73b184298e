// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package gateway_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

func call(method, path, body string, headers map[string]string) (*http.Response, map[string]any) {
	req, err := http.NewRequestWithContext(env.ctx, method, env.baseURL+path, strings.NewReader(body))
	Expect(err).NotTo(HaveOccurred())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())

	var out map[string]any
	if len(raw) > 0 {
		Expect(json.Unmarshal(raw, &out)).To(Succeed())
	}
	return resp, out
}

func login(password string) (*http.Response, map[string]any) {
	return call(http.MethodPost, "/auth", `{"username":"admin","password":"`+password+`"}`, nil)
}

var _ = Describe("Admin sessions", func() {
	It("issues a token that validates", func() {
		resp, body := login("secret")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(body["success"]).To(BeTrue())
		Expect(body["username"]).To(Equal("admin"))

		token, ok := body["token"].(string)
		Expect(ok).To(BeTrue())
		Expect(token).To(HaveLen(43))

		resp, body = call(http.MethodGet, "/auth", "", map[string]string{"x-session-token": token})
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(body).To(Equal(map[string]any{"valid": true, "username": "admin"}))
	})

	It("rejects a wrong password", func() {
		resp, body := login("wrong")
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(body["error"]).To(Equal("Invalid credentials"))
	})

	It("reports unknown tokens as invalid", func() {
		resp, body := call(http.MethodGet, "/auth", "", map[string]string{"X-Session-Token": "nope"})
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(body).To(Equal(map[string]any{"valid": false}))
	})

	It("answers preflight requests with an empty body", func() {
		resp, body := call(http.MethodOptions, "/auth", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(body).To(BeNil())
		Expect(resp.Header.Get("Access-Control-Allow-Methods")).To(Equal("GET, POST, OPTIONS"))
	})
})

var _ = Describe("Catalog", func() {
	var token string

	BeforeEach(func() {
		_, body := login("secret")
		token, _ = body["token"].(string)
		Expect(token).NotTo(BeEmpty())
	})

	It("requires a session to create products", func() {
		resp, body := call(http.MethodPost, "/products",
			`{"name":"Mug","price":9.5,"category":"kitchen","image":"mug.png"}`, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(body["error"]).To(Equal("Unauthorized"))
	})

	It("creates a product, reviews it and lists both", func() {
		resp, body := call(http.MethodPost, "/products",
			`{"name":"Lamp","price":42,"category":"home","image":"lamp.png"}`,
			map[string]string{"X-Session-Token": token})
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		product, ok := body["product"].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(product["name"]).To(Equal("Lamp"))
		productID := product["id"].(float64)

		resp, body = call(http.MethodPost, "/reviews",
			`{"product_id":`+jsonNumber(productID)+`,"author_name":"Ada","rating":5,"comment":"Bright"}`, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		Expect(body["review"]).To(HaveKeyWithValue("author_name", "Ada"))

		resp, body = call(http.MethodGet, "/reviews?product_id="+jsonNumber(productID), "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(body["reviews"]).To(HaveLen(1))

		resp, body = call(http.MethodGet, "/products", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(body["products"]).NotTo(BeEmpty())
	})

	It("rejects reviews for unknown products", func() {
		resp, body := call(http.MethodPost, "/reviews",
			`{"product_id":999999,"author_name":"Ada","rating":4,"comment":"?"}`, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		Expect(body["error"]).To(Equal("Product not found"))
	})

	It("rejects out of range ratings", func() {
		resp, body := call(http.MethodPost, "/reviews",
			`{"product_id":1,"author_name":"Ada","rating":9,"comment":"!"}`, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(body["error"]).To(Equal("Rating must be between 1 and 5"))
	})
})

func jsonNumber(f float64) string {
	b, err := json.Marshal(f)
	Expect(err).NotTo(HaveOccurred())
	return string(b)
}
