package service

import (
	"context"
	"errors"
	"testing"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/repository"
)

func setupStudentServiceTest(t *testing.T) (*StudentService, *VerificationService, *electionTestEnv) {
	t.Helper()
	env := setupElectionTestEnv(t, "student_service_test")
	verification := NewVerificationService(NewDatabaseVerificationCodeStore(env.codeRepo), &recordingMailer{}, config.VerificationConfig{}, nil)
	return NewStudentService(env.studentRepo, verification, nil), verification, env
}

func validStudentInput() RegisterStudentInput {
	return RegisterStudentInput{
		MatricNumber:  " 19/52ha001 ",
		Email:         "Ada.Obi@Students.Unilorin.edu.ng",
		FullName:      "Ada Obi",
		Faculty:       "Engineering",
		Department:    "Electrical",
		Level:         "500",
		WalletAddress: "0x52908400098527886e0f7030069857d2e4169ee7",
	}
}

func TestRegisterStudentNormalizesFields(t *testing.T) {
	svc, _, _ := setupStudentServiceTest(t)
	student, err := svc.RegisterStudent(validStudentInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if student.ID == 0 || student.IsVerified {
		t.Fatalf("expected persisted unverified student, got %+v", student)
	}
	if student.MatricNumber != "19/52HA001" {
		t.Fatalf("unexpected matric number: %s", student.MatricNumber)
	}
	if student.Email != "ada.obi@students.unilorin.edu.ng" {
		t.Fatalf("unexpected email: %s", student.Email)
	}
	if student.WalletAddress != "0x52908400098527886E0F7030069857D2E4169EE7" {
		t.Fatalf("wallet not checksummed: %s", student.WalletAddress)
	}
}

func TestRegisterStudentRejectsDuplicates(t *testing.T) {
	svc, _, _ := setupStudentServiceTest(t)
	if _, err := svc.RegisterStudent(validStudentInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	sameEmail := validStudentInput()
	sameEmail.MatricNumber = "19/52HA002"
	if _, err := svc.RegisterStudent(sameEmail); !errors.Is(err, ErrDuplicateStudent) {
		t.Fatalf("expected duplicate by email, got %v", err)
	}

	sameMatric := validStudentInput()
	sameMatric.Email = "other@students.unilorin.edu.ng"
	if _, err := svc.RegisterStudent(sameMatric); !errors.Is(err, ErrDuplicateStudent) {
		t.Fatalf("expected duplicate by matric, got %v", err)
	}

	_, total, err := svc.List(repository.StudentListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 student after rejected duplicates, got %d", total)
	}
}

func TestRegisterStudentValidation(t *testing.T) {
	svc, _, _ := setupStudentServiceTest(t)

	missing := validStudentInput()
	missing.FullName = "  "
	if _, err := svc.RegisterStudent(missing); !errors.Is(err, ErrStudentFieldsRequired) {
		t.Fatalf("expected fields required, got %v", err)
	}

	badEmail := validStudentInput()
	badEmail.Email = "ada-at-unilorin"
	if _, err := svc.RegisterStudent(badEmail); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}

	badWallet := validStudentInput()
	badWallet.WalletAddress = "0x1234"
	if _, err := svc.RegisterStudent(badWallet); !errors.Is(err, ErrInvalidWalletAddress) {
		t.Fatalf("expected invalid wallet, got %v", err)
	}

	noWallet := validStudentInput()
	noWallet.WalletAddress = ""
	student, err := svc.RegisterStudent(noWallet)
	if err != nil {
		t.Fatalf("wallet should be optional: %v", err)
	}
	if student.WalletAddress != "" {
		t.Fatalf("expected empty wallet, got %q", student.WalletAddress)
	}
}

func TestMarkVerifiedIsIdempotent(t *testing.T) {
	svc, _, _ := setupStudentServiceTest(t)
	student, err := svc.RegisterStudent(validStudentInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	first, err := svc.MarkVerified(student.ID)
	if err != nil {
		t.Fatalf("mark verified failed: %v", err)
	}
	if !first.IsVerified || first.VerifiedAt == nil {
		t.Fatalf("expected verified student, got %+v", first)
	}
	second, err := svc.MarkVerified(student.ID)
	if err != nil {
		t.Fatalf("second mark verified failed: %v", err)
	}
	if !second.IsVerified || second.VerifiedAt == nil || second.VerifiedAt.Unix() != first.VerifiedAt.Unix() {
		t.Fatalf("second call should keep first verification time: %v vs %v", second.VerifiedAt, first.VerifiedAt)
	}

	if _, err := svc.MarkVerified(99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindStudentReturnsNilWhenAbsent(t *testing.T) {
	svc, _, _ := setupStudentServiceTest(t)
	if _, err := svc.RegisterStudent(validStudentInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	byEmail, err := svc.FindByEmail("ADA.OBI@students.unilorin.edu.ng")
	if err != nil || byEmail == nil {
		t.Fatalf("expected student by email, got %v %v", byEmail, err)
	}
	byMatric, err := svc.FindByMatric("19/52ha001")
	if err != nil || byMatric == nil {
		t.Fatalf("expected student by matric, got %v %v", byMatric, err)
	}

	missing, err := svc.FindByEmail("nobody@students.unilorin.edu.ng")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown email, got %v %v", missing, err)
	}
	missing, err = svc.FindByMatric("00/00XX000")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown matric, got %v %v", missing, err)
	}
}

func TestVerifyEmailAndMark(t *testing.T) {
	svc, verification, _ := setupStudentServiceTest(t)
	verification.codeFunc = fixedCode("314159")
	student, err := svc.RegisterStudent(validStudentInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	ctx := context.Background()

	if err := verification.RequestCode(ctx, student.Email, ""); err != nil {
		t.Fatalf("request code failed: %v", err)
	}
	if _, err := svc.VerifyEmailAndMark(ctx, student.Email, "000000"); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected invalid code, got %v", err)
	}
	unchanged, err := svc.GetByID(student.ID)
	if err != nil {
		t.Fatalf("get student failed: %v", err)
	}
	if unchanged.IsVerified {
		t.Fatalf("failed verification must not mark student")
	}

	verified, err := svc.VerifyEmailAndMark(ctx, student.Email, "314159")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified == nil || !verified.IsVerified {
		t.Fatalf("expected verified student, got %+v", verified)
	}

	if err := verification.RequestCode(ctx, "guest@students.unilorin.edu.ng", ""); err != nil {
		t.Fatalf("request code failed: %v", err)
	}
	guest, err := svc.VerifyEmailAndMark(ctx, "guest@students.unilorin.edu.ng", "314159")
	if err != nil {
		t.Fatalf("verify unregistered email failed: %v", err)
	}
	if guest != nil {
		t.Fatalf("unregistered email should return nil student")
	}
}
