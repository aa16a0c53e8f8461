package i18n

// Key names a localized message.
type Key string

// Message keys.
const (
	InvalidRequest      Key = "invalid_request"
	InternalError       Key = "internal_error"
	Unauthorized        Key = "unauthorized"
	Forbidden           Key = "forbidden"
	NotFound            Key = "not_found"
	TooManyRequests     Key = "too_many_requests"
	RequestTooLarge     Key = "request_too_large"
	MessageRequired     Key = "message_required"
	MessageTooLong      Key = "message_too_long"
	MessageHarmful      Key = "message_harmful"
	AIUnavailable       Key = "ai_unavailable"
	AISafety            Key = "ai_safety"
	PostIDRequired      Key = "post_id_required"
	CommentIDRequired   Key = "comment_id_required"
	CommentLength       Key = "comment_length"
	CommentSpam         Key = "comment_spam"
	PostNotFound        Key = "post_not_found"
	ParentInvalid       Key = "parent_invalid"
	CommentNotFound     Key = "comment_not_found"
	CommentForbidden    Key = "comment_forbidden"
	FormNotFound        Key = "form_not_found"
	FormFieldRequired   Key = "form_field_required"
	FormFieldInvalid    Key = "form_field_invalid"
	FormTooManyFiles    Key = "form_too_many_files"
	FormFileTooLarge    Key = "form_file_too_large"
	FormUploadDisabled  Key = "form_upload_disabled"
	InvalidEmail        Key = "invalid_email"
	NameRequired        Key = "name_required"
	SpamDetected        Key = "spam_detected"
	CaptchaFailed       Key = "captcha_failed"
	AlreadySubscribed   Key = "already_subscribed"
	SubscribeSuccess    Key = "subscribe_success"
	ResubscribeSuccess  Key = "resubscribe_success"
	TokenRequired       Key = "token_required"
	SubscriptionMissing Key = "subscription_missing"
	ApplicationInvalid  Key = "application_invalid"
	ApplicationMissing  Key = "application_missing"
	StatusInvalid       Key = "status_invalid"
	CodeInvalid         Key = "code_invalid"
	CodeExists          Key = "code_exists"
	CodeNotFound        Key = "code_not_found"
	AmountInvalid       Key = "amount_invalid"
	TypeInvalid         Key = "type_invalid"
	DateRangeInvalid    Key = "date_range_invalid"
	ItemTypeInvalid     Key = "item_type_invalid"
	CertificateInvalid  Key = "certificate_invalid"
	EmailSendFailed     Key = "email_send_failed"
	InvalidCredentials  Key = "invalid_credentials"

	BlogTitle    Key = "blog_title"
	BlogEmpty    Key = "blog_empty"
	HomeLabel    Key = "home_label"
	CommentsHead Key = "comments_head"
	NoComments   Key = "no_comments"
)

type message struct {
	tr string
	en string
}

var catalog = map[Key]message{
	InvalidRequest:      {"Geçersiz istek.", "Invalid request."},
	InternalError:       {"Bir hata oluştu, lütfen daha sonra tekrar deneyin.", "Something went wrong, please try again later."},
	Unauthorized:        {"Bu işlem için giriş yapmalısınız.", "You must be signed in to do this."},
	Forbidden:           {"Bu işlem için yetkiniz yok.", "You are not allowed to do this."},
	NotFound:            {"Bulunamadı.", "Not found."},
	TooManyRequests:     {"Çok fazla istek gönderdiniz, lütfen daha sonra tekrar deneyin.", "Too many requests, please try again later."},
	RequestTooLarge:     {"İstek boyutu çok büyük.", "Request is too large."},
	MessageRequired:     {"Mesaj boş olamaz.", "Message cannot be empty."},
	MessageTooLong:      {"Mesaj en fazla 1000 karakter olabilir.", "Message can be at most 1000 characters."},
	MessageHarmful:      {"Bu konuda yardımcı olamıyorum.", "I can't help with that topic."},
	AIUnavailable:       {"Yapay zeka servisi şu anda kullanılamıyor.", "The AI service is currently unavailable."},
	AISafety:            {"Bu isteğe güvenlik nedeniyle yanıt veremiyorum.", "I can't answer this request for safety reasons."},
	PostIDRequired:      {"postId zorunludur.", "postId is required."},
	CommentIDRequired:   {"commentId zorunludur.", "commentId is required."},
	CommentLength:       {"Yorum 2 ile 2000 karakter arasında olmalıdır.", "Comment must be between 2 and 2000 characters."},
	CommentSpam:         {"Yorumunuz spam olarak algılandı.", "Your comment was detected as spam."},
	PostNotFound:        {"Yazı bulunamadı.", "Post not found."},
	ParentInvalid:       {"Yanıtlanan yorum bu yazıya ait değil.", "The parent comment does not belong to this post."},
	CommentNotFound:     {"Yorum bulunamadı.", "Comment not found."},
	CommentForbidden:    {"Bu yorumu silme yetkiniz yok.", "You are not allowed to delete this comment."},
	FormNotFound:        {"Form bulunamadı veya aktif değil.", "Form not found or inactive."},
	FormFieldRequired:   {"Zorunlu alan eksik: ", "Required field missing: "},
	FormFieldInvalid:    {"Geçersiz alan: ", "Invalid field: "},
	FormTooManyFiles:    {"En fazla 5 dosya yükleyebilirsiniz.", "You can upload at most 5 files."},
	FormFileTooLarge:    {"Dosya boyutu 5 MB'ı aşamaz.", "File size cannot exceed 5 MB."},
	FormUploadDisabled:  {"Dosya yükleme şu anda kullanılamıyor.", "File uploads are currently unavailable."},
	InvalidEmail:        {"Geçerli bir e-posta adresi girin.", "Please enter a valid email address."},
	NameRequired:        {"Ad ve soyad zorunludur.", "First and last name are required."},
	SpamDetected:        {"İsteğiniz otomatik gönderim olarak algılandı.", "Your request was detected as automated."},
	CaptchaFailed:       {"Doğrulama başarısız oldu, lütfen tekrar deneyin.", "Verification failed, please try again."},
	AlreadySubscribed:   {"Bu e-posta adresi zaten bültene kayıtlı.", "This email address is already subscribed."},
	SubscribeSuccess:    {"Bültenimize başarıyla kaydoldunuz.", "You have successfully subscribed to our newsletter."},
	ResubscribeSuccess:  {"Bülten aboneliğiniz yeniden etkinleştirildi.", "Your newsletter subscription has been reactivated."},
	TokenRequired:       {"token zorunludur.", "token is required."},
	SubscriptionMissing: {"Abonelik bulunamadı.", "Subscription not found."},
	ApplicationInvalid:  {"Başvuru bilgileri geçersiz: ", "Invalid application: "},
	ApplicationMissing:  {"Başvuru bulunamadı.", "Application not found."},
	StatusInvalid:       {"Geçersiz durum.", "Invalid status."},
	CodeInvalid:         {"Kod 3-32 karakter olmalı ve yalnızca A-Z, 0-9 ve - içermelidir.", "Code must be 3-32 characters of A-Z, 0-9 and -."},
	CodeExists:          {"Bu indirim kodu zaten mevcut.", "This discount code already exists."},
	CodeNotFound:        {"İndirim kodu geçersiz veya süresi dolmuş.", "Discount code is invalid or expired."},
	AmountInvalid:       {"İndirim miktarı geçersiz.", "Discount amount is invalid."},
	TypeInvalid:         {"İndirim türü percentage veya fixed olmalıdır.", "Discount type must be percentage or fixed."},
	DateRangeInvalid:    {"Bitiş tarihi başlangıç tarihinden sonra olmalıdır.", "valid_until must be after valid_from."},
	ItemTypeInvalid:     {"Geçersiz sertifika türü.", "Invalid certificate item type."},
	CertificateInvalid:  {"Sertifika bilgileri eksik veya geçersiz.", "Certificate details are missing or invalid."},
	EmailSendFailed:     {"E-posta gönderilemedi.", "Email could not be sent."},
	InvalidCredentials:  {"E-posta veya şifre hatalı.", "Invalid email or password."},
	BlogTitle:           {"Blog", "Blog"},
	BlogEmpty:           {"Henüz yayınlanmış yazı yok.", "No posts have been published yet."},
	HomeLabel:           {"Ana Sayfa", "Home"},
	CommentsHead:        {"Yorumlar", "Comments"},
	NoComments:          {"Henüz yorum yok.", "No comments yet."},
}

// chatFallbacks are shown when the AI reply could not be produced.
var chatFallbacks = map[Lang][]string{
	TR: {
		"Üzgünüm, şu anda yanıt veremiyorum. Lütfen biraz sonra tekrar deneyin.",
		"Bir sorun oluştu. Sorunuzu farklı bir şekilde sormayı deneyebilirsiniz.",
		"Şu an yoğunluk nedeniyle yanıt veremiyorum, lütfen tekrar deneyin.",
		"Yanıt oluşturulamadı. Lütfen sorunuzu kısaltarak tekrar sorun.",
	},
	EN: {
		"Sorry, I can't answer right now. Please try again in a moment.",
		"Something went wrong. You could try asking your question differently.",
		"I'm unable to respond due to high demand, please try again.",
		"No reply could be produced. Please try a shorter question.",
	},
}

// ChatFallbacks returns the fixed fallback replies for lang.
func ChatFallbacks(lang Lang) []string {
	if lang == EN {
		return chatFallbacks[EN]
	}

	return chatFallbacks[TR]
}
