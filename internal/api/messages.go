package api

// redirect 後顯示的 flash 文字
const (
	MsgCreated        = "Thêm mới thành công"
	MsgCreateFailed   = "Thêm mới không thành công"
	MsgDeleted        = "Xóa thành công"
	MsgDeleteFailed   = "Xóa không thành công"
	MsgRestored       = "Khôi phục thành công"
	MsgRestoreFailed  = "Khôi phục không thành công"
	MsgForceDeleted   = "Xóa vĩnh viễn thành công"
	MsgBulkDeleted    = "Xóa thành công %d bản ghi"
	MsgNothingDeleted = "Không có bản ghi nào được xóa"
	MsgNotFound       = "Không tìm thấy bản ghi"
	MsgLoadFailed     = "Không tải được dữ liệu"

	MsgCategoryUpdated      = "Sửa danh mục thành công"
	MsgCategoryUpdateFailed = "Sửa danh mục không thành công"
	MsgProductUpdated       = "Sửa sản phẩm thành công"
	MsgProductUpdateFailed  = "Sửa sản phẩm không thành công"

	MsgLoginFailed  = "Email hoặc mật khẩu không đúng"
	MsgUploaded     = "Tải ảnh lên thành công"
	MsgUploadFailed = "Tải ảnh lên không thành công"
	MsgNotImage     = "Chỉ chấp nhận tệp ảnh"
	MsgTooLarge     = "Ảnh vượt quá 5MB"
	MsgNoStorage    = "Chưa cấu hình kho lưu trữ ảnh"
)

var CategoryMessages = map[string]string{
	"name.required": "Tên danh mục không để trống",
	"name.max":      "Tên danh mục tối đa 100 ký tự",
	"name.unique":   "Tên danh mục này đã được sử dụng",
	"status.oneof":  "Trạng thái không hợp lệ",
}

var ProductMessages = map[string]string{
	"name.required":        "Tên sản phẩm không để trống",
	"name.max":             "Tên sản phẩm tối đa 100 ký tự",
	"name.unique":          "Tên sản phẩm này đã được sử dụng",
	"image.max":            "Đường dẫn ảnh quá dài",
	"images_list.json":     "Danh sách ảnh không hợp lệ",
	"price.required":       "Giá sản phẩm không để trống",
	"price.number":         "Giá sản phẩm phải là số không âm",
	"price.max":            "Giá sản phẩm quá lớn",
	"price_sale.number":    "Giá SALE phải là số không âm",
	"price_sale.max":       "Giá SALE quá lớn",
	"category_id.required": "Vui lòng chọn danh mục",
	"category_id.number":   "Danh mục không hợp lệ",
	"category_id.max":      "Danh mục không hợp lệ",
	"category_id.exists":   "Danh mục không tồn tại",
	"brand_id.number":      "Brand không hợp lệ",
	"brand_id.max":         "Brand không hợp lệ",
	"status.oneof":         "Trạng thái không hợp lệ",
}

var LoginMessages = map[string]string{
	"email.required":    "Email không để trống",
	"email.email":       "Email không đúng định dạng",
	"password.required": "Mật khẩu không để trống",
}
