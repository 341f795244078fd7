package service

import (
	"cmsapi/internal/files"
)

// Registry groups the constructed services for route wiring.
type Registry struct {
	Files      *files.Service
	Auth       AuthService
	Users      UserService
	Blogs      BlogService
	Galleries  GalleryService
	Interviews InterviewService
	Media      MediaService
	Magazines  MagazineService
}
