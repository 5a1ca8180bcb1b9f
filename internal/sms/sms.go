package sms

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Sender 短信网关接口
// datas 为模板参数，例如 [验证码, 有效分钟数]
type Sender interface {
	SendTemplateSMS(ctx context.Context, mobile string, datas []string, templateID int) error
}

const softVersion = "2013-12-26"

// CCP 云通讯 REST 短信客户端
type CCP struct {
	accountSID string
	authToken  string
	appID      string
	serverURL  string
	client     *http.Client
}

func NewCCP(accountSID, authToken, appID, serverURL string) *CCP {
	return &CCP{
		accountSID: accountSID,
		authToken:  authToken,
		appID:      appID,
		serverURL:  strings.TrimRight(serverURL, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type templateSMSRequest struct {
	To         string   `json:"to"`
	AppID      string   `json:"appId"`
	TemplateID string   `json:"templateId"`
	Datas      []string `json:"datas"`
}

type templateSMSResponse struct {
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMsg"`
}

// SendTemplateSMS 调用云通讯模板短信接口，statusCode 为 000000 表示成功
func (c *CCP) SendTemplateSMS(ctx context.Context, mobile string, datas []string, templateID int) error {
	// 签名规则：MD5(主账号 + 主账号令牌 + 时间戳)，时间戳同时进 URL 与鉴权头
	timestamp := time.Now().Format("20060102150405")
	sum := md5.Sum([]byte(c.accountSID + c.authToken + timestamp))
	sig := strings.ToUpper(hex.EncodeToString(sum[:]))

	url := fmt.Sprintf("%s/%s/Accounts/%s/SMS/TemplateSMS?sig=%s",
		c.serverURL, softVersion, c.accountSID, sig)

	body, err := json.Marshal(templateSMSRequest{
		To:         mobile,
		AppID:      c.appID,
		TemplateID: fmt.Sprintf("%d", templateID),
		Datas:      datas,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	auth := base64.StdEncoding.EncodeToString([]byte(c.accountSID + ":" + timestamp))
	req.Header.Set("Authorization", auth)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out templateSMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if out.StatusCode != "000000" {
		return fmt.Errorf("sms gateway: %s %s", out.StatusCode, out.StatusMsg)
	}
	return nil
}
