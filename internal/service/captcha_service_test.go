package service

import (
	"errors"
	"testing"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/constants"
)

func TestCaptchaDisabledPassesThrough(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: constants.CaptchaProviderNone})
	if svc.Enabled(constants.CaptchaSceneSendCode) {
		t.Fatalf("captcha should be disabled")
	}
	if err := svc.Verify(constants.CaptchaSceneSendCode, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass: %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("expected config invalid, got %v", err)
	}
}

func TestCaptchaImageSceneRequiresAnswer(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: constants.CaptchaProviderImage,
		Scenes:   config.CaptchaSceneConfig{SendCode: true},
	})
	if !svc.Enabled(constants.CaptchaSceneSendCode) || svc.Enabled(constants.CaptchaSceneAdminLogin) {
		t.Fatalf("unexpected scene switches")
	}
	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass: %v", err)
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}
	if err := svc.Verify(constants.CaptchaSceneSendCode, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected captcha required, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneSendCode, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected captcha invalid, got %v", err)
	}

	challenge, err = svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	answer := svc.store().Get(challenge.CaptchaID, false)
	if err := svc.Verify(constants.CaptchaSceneSendCode, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}); err != nil {
		t.Fatalf("correct answer should pass: %v", err)
	}
}
