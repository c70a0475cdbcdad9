package dto

// MovieFormDTO is the multipart form shared by create and update. The image
// file itself travels outside the bound fields (form field "image") and takes
// precedence over ImageURL when both are present.
type MovieFormDTO struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description" binding:"required,max=2000"`
	Genre       *string `form:"genre"`
	Rating      *int    `form:"rating" binding:"omitempty,min=1,max=5"`
	ImageURL    *string `form:"imageUrl"`
}
