package services

import (
	"context"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type CategoryService struct {
	CategoryRepo *repositories.CategoryRepository
}

func (s *CategoryService) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	return s.CategoryRepo.CreateCategory(ctx, c)
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.CategoryRepo.GetAllCategories(ctx)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, c models.Category) error {
	return s.CategoryRepo.UpdateCategory(ctx, c)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteCategory(ctx, id)
}

func (s *CategoryService) CreateSubcategory(ctx context.Context, sub models.Subcategory) (models.Subcategory, error) {
	if _, err := s.CategoryRepo.GetCategoryByID(ctx, sub.CategoryID); err != nil {
		return models.Subcategory{}, err
	}
	return s.CategoryRepo.CreateSubcategory(ctx, sub)
}

func (s *CategoryService) GetSubcategoriesByCategory(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	return s.CategoryRepo.GetSubcategoriesByCategory(ctx, categoryID)
}

func (s *CategoryService) DeleteSubcategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteSubcategory(ctx, id)
}
