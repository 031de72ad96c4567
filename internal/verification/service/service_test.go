package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycverify/internal/verification/models"
	"kycverify/internal/verification/ports"
	"kycverify/internal/verification/ports/mocks"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	ocr     *mocks.MockOCRExtractor
	faces   *mocks.MockFaceComparer
	phones  *mocks.MockPhoneParser
	images  *mocks.MockImageChecker
	logs    *bytes.Buffer
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ocr = mocks.NewMockOCRExtractor(s.ctrl)
	s.faces = mocks.NewMockFaceComparer(s.ctrl)
	s.phones = mocks.NewMockPhoneParser(s.ctrl)
	s.images = mocks.NewMockImageChecker(s.ctrl)
	s.logs = &bytes.Buffer{}

	cfg := DefaultConfig()
	cfg.AdapterTimeout = 50 * time.Millisecond

	svc, err := New(s.ocr, s.faces, s.phones, s.images,
		WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))),
		WithConfig(cfg),
	)
	s.Require().NoError(err)
	s.service = svc
}

func ptr[T any](v T) *T { return &v }

var (
	selfie  = []byte("selfie")
	idFront = []byte("front")
	idBack  = []byte("back")
)

func readmeRequest() VerifyRequest {
	return VerifyRequest{
		Claim:   models.ClaimedIdentity{Name: "John Doe", IDNumber: "12345678", PhoneNumber: "0712345678"},
		Selfie:  selfie,
		IDFront: idFront,
		IDBack:  idBack,
	}
}

func (s *ServiceSuite) expectImagesOK() {
	s.images.EXPECT().CheckImage(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (s *ServiceSuite) expectValidPhone() {
	s.phones.EXPECT().Parse("0712345678", "KE").Return(&models.PhoneDetails{
		Raw: "0712345678", E164: "+254712345678", CountryCode: 254, RegionCode: "KE", IsValid: true, IsPossible: true,
	}, nil)
}

func (s *ServiceSuite) expectOCR(front, back *models.ExtractedIDData) {
	s.ocr.EXPECT().ExtractIDFields(gomock.Any(), idFront).Return(front, nil)
	s.ocr.EXPECT().ExtractIDFields(gomock.Any(), idBack).Return(back, nil)
}

func (s *ServiceSuite) TestVerify_ReadmeScenario() {
	s.expectImagesOK()
	s.expectValidPhone()
	s.expectOCR(&models.ExtractedIDData{
		IDNumber:     ptr("12345678"),
		FullName:     ptr("JOHN DOE"),
		OtherDetails: map[string]string{},
	}, models.NewExtractedIDData())
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).Return(0.015, nil)

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().NoError(err)
	s.Equal(models.StatusSuccess, res.Status)
	s.True(res.IsVerified)
	d := res.ValidationDetails
	s.Require().NotNil(d)
	s.True(d.IDValidation.IDNumberValid)
	s.True(d.IDValidation.IDPatternMatched)
	s.True(d.FaceMatch.IsMatch)
	s.Equal(98.5, d.FaceMatch.Confidence)
	s.True(d.PhoneValidation.IsValid)
	s.Equal("+254712345678", *d.PhoneValidation.NormalizedNumber)
	s.True(d.NameMatch)
	s.Equal("12345678", *d.OCRExtractedData.IDNumber)

	body, err := json.Marshal(res)
	s.Require().NoError(err)
	s.JSONEq(`{
		"status": "success",
		"message": "Validation completed successfully",
		"is_verified": true,
		"data": {"name": "John Doe", "id_number": "12345678", "phone_number": "0712345678"},
		"validation_details": {
			"id_validation": {
				"id_number_valid": true,
				"id_pattern_matched": true,
				"extracted_data": {"id_number": "12345678", "full_name": "JOHN DOE", "date_of_birth": null, "gender": null, "other_details": {}}
			},
			"face_match": {"is_match": true, "confidence": 98.5, "message": "Faces match with 98.5% confidence"},
			"phone_validation": {"is_valid": true, "normalized_number": "+254712345678", "message": "Valid phone number"},
			"name_match": true,
			"ocr_extracted_data": {"id_number": "12345678", "full_name": "JOHN DOE", "date_of_birth": null, "gender": null, "other_details": {}}
		}
	}`, string(body))
	s.Contains(s.logs.String(), "verification completed")
	s.NotContains(s.logs.String(), "12345678")
	s.NotContains(s.logs.String(), "John Doe")
}

func (s *ServiceSuite) TestVerify_EmptyOCRIDNotVerified() {
	s.expectImagesOK()
	s.expectValidPhone()
	s.expectOCR(&models.ExtractedIDData{FullName: ptr("John Doe")}, models.NewExtractedIDData())
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).Return(0.1, nil)

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().NoError(err)
	s.Equal(models.StatusSuccess, res.Status)
	s.False(res.IsVerified)
	s.False(res.ValidationDetails.IDValidation.IDPatternMatched)
	s.Nil(res.ValidationDetails.OCRExtractedData.IDNumber)
	s.NotNil(res.ValidationDetails.OCRExtractedData.OtherDetails)
}

func (s *ServiceSuite) TestVerify_BackFillsFrontGaps() {
	s.expectImagesOK()
	s.expectValidPhone()
	s.expectOCR(
		&models.ExtractedIDData{IDNumber: ptr("12345678"), OtherDetails: map[string]string{"document_type": "national_id"}},
		&models.ExtractedIDData{IDNumber: ptr("99999999"), FullName: ptr("Doe John"), OtherDetails: map[string]string{"place_of_issue": "Nairobi"}},
	)
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).Return(0.2, nil)

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().NoError(err)
	got := res.ValidationDetails.OCRExtractedData
	s.Equal("12345678", *got.IDNumber)
	s.Equal("Doe John", *got.FullName)
	s.Equal("national_id", got.OtherDetails["document_type"])
	s.Equal("Nairobi", got.OtherDetails["place_of_issue"])
	s.True(res.IsVerified)
}

func (s *ServiceSuite) TestVerify_UndecodableSelfieFails() {
	s.images.EXPECT().CheckImage(ports.ImageSelfie, selfie).
		Return(ports.UnreadableImage("imaging", ports.ImageSelfie, errors.New("unknown format")))

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().Error(err)
	s.True(ports.IsUnreadableImage(err))
	s.Equal(models.StatusFailure, res.Status)
	s.False(res.IsVerified)
	s.Nil(res.ValidationDetails)
	s.Equal("Validation failed: Could not read selfie image", res.Message)
	s.Equal("John Doe", res.Data.Name)
}

func (s *ServiceSuite) TestVerify_NoFaceIsAnOutcome() {
	s.expectImagesOK()
	s.expectValidPhone()
	s.expectOCR(&models.ExtractedIDData{IDNumber: ptr("12345678"), FullName: ptr("John Doe")}, nil)
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).
		Return(0.0, ports.NoFaceDetected("face", ports.ImageSelfie))

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().NoError(err)
	s.Equal(models.StatusSuccess, res.Status)
	s.False(res.IsVerified)
	s.False(res.ValidationDetails.FaceMatch.IsMatch)
	s.Zero(res.ValidationDetails.FaceMatch.Confidence)
	s.Equal("No face detected in selfie image", res.ValidationDetails.FaceMatch.Message)
}

func (s *ServiceSuite) TestVerify_OCRTimeoutFails() {
	s.expectImagesOK()
	s.expectValidPhone()
	s.ocr.EXPECT().ExtractIDFields(gomock.Any(), idFront).DoAndReturn(
		func(ctx context.Context, _ []byte) (*models.ExtractedIDData, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	s.ocr.EXPECT().ExtractIDFields(gomock.Any(), idBack).Return(models.NewExtractedIDData(), nil)
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).Return(0.1, nil)

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().Error(err)
	s.True(ports.IsTimeout(err))
	s.Equal(ports.ImageIDFront, ports.ImageOf(err))
	s.Equal(models.StatusFailure, res.Status)
	s.Equal("Validation failed: OCR service timed out", res.Message)
	s.Nil(res.ValidationDetails)
}

func (s *ServiceSuite) TestVerify_FaceOutageFails() {
	s.expectImagesOK()
	s.expectValidPhone()
	s.expectOCR(models.NewExtractedIDData(), models.NewExtractedIDData())
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).
		Return(0.0, ports.NewAdapterError(ports.ErrorAdapterOutage, "face", "sidecar returned 503", nil))

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().Error(err)
	s.Equal(ports.ErrorAdapterOutage, ports.GetCategory(err))
	s.Equal("Validation failed: Face matching service unavailable", res.Message)
}

func (s *ServiceSuite) TestVerify_ErrorOrderIsDeterministic() {
	s.expectImagesOK()
	s.expectValidPhone()
	s.ocr.EXPECT().ExtractIDFields(gomock.Any(), idFront).
		Return(nil, ports.UnreadableImage("ocr", "", nil))
	s.ocr.EXPECT().ExtractIDFields(gomock.Any(), idBack).
		Return(nil, ports.NewAdapterError(ports.ErrorAdapterOutage, "ocr", "down", nil))
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).Return(0.1, nil)

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.True(ports.IsUnreadableImage(err))
	s.Equal("Validation failed: Could not read ID front image", res.Message)
}

func (s *ServiceSuite) TestVerify_InvalidPhoneVetoes() {
	s.expectImagesOK()
	s.phones.EXPECT().Parse("0712345678", "KE").Return(&models.PhoneDetails{IsValid: false}, nil)
	s.expectOCR(&models.ExtractedIDData{IDNumber: ptr("12345678"), FullName: ptr("John Doe")}, nil)
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).Return(0.1, nil)

	res, err := s.service.Verify(context.Background(), readmeRequest())

	s.Require().NoError(err)
	s.False(res.IsVerified)
	s.Nil(res.ValidationDetails.PhoneValidation.NormalizedNumber)
}

func (s *ServiceSuite) TestValidatePhone() {
	s.expectValidPhone()

	details, out := s.service.ValidatePhone(context.Background(), "0712345678", "")

	s.True(out.IsValid)
	s.Require().NotNil(details)
	s.Equal("KE", details.RegionCode)
}

func (s *ServiceSuite) TestExtractText() {
	s.expectImagesOK()
	s.ocr.EXPECT().ExtractIDFields(gomock.Any(), idFront).Return(&models.ExtractedIDData{IDNumber: ptr("1234567")}, nil)

	got, err := s.service.ExtractText(context.Background(), idFront)

	s.Require().NoError(err)
	s.Equal("1234567", *got.IDNumber)
	s.NotNil(got.OtherDetails)
}

func (s *ServiceSuite) TestCompareFaces() {
	s.expectImagesOK()
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).Return(0.7, nil)

	out, err := s.service.CompareFaces(context.Background(), selfie, idFront)

	s.Require().NoError(err)
	s.False(out.IsMatch)
	s.Equal(30.0, out.Confidence)
}

func (s *ServiceSuite) TestCompareFaces_NoFaceIsNotAnError() {
	s.expectImagesOK()
	s.faces.EXPECT().FaceDistance(gomock.Any(), selfie, idFront).
		Return(0.0, ports.NoFaceDetected("face", ports.ImageIDFront))

	out, err := s.service.CompareFaces(context.Background(), selfie, idFront)

	s.Require().NoError(err)
	s.False(out.IsMatch)
	s.Zero(out.Confidence)
	s.Equal("No face detected in ID front image", out.Message)
}

func (s *ServiceSuite) TestReady() {
	s.ocr.EXPECT().Health(gomock.Any()).Return(nil)
	s.faces.EXPECT().Health(gomock.Any()).Return(errors.New("down"))

	s.Error(s.service.Ready(context.Background()))
}

func (s *ServiceSuite) TestNew_RequiresCollaborators() {
	_, err := New(nil, s.faces, s.phones, s.images)
	s.Error(err)
	_, err = New(s.ocr, s.faces, nil, s.images)
	s.Error(err)
}
