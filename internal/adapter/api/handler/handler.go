package handler

import (
	"arcmarket/internal/usecase"
)

var (
	collectionHandler *CollectionHandler
	itemHandler       *ItemHandler
	personHandler     *PersonHandler
	healthHandler     *HealthHandler
)

func Setup(
	collectionUsecase *usecase.CollectionUsecase,
	itemUsecase *usecase.ItemUsecase,
	personUsecase *usecase.PersonUsecase,
) {
	collectionHandler = NewCollectionHandler(collectionUsecase)
	itemHandler = NewItemHandler(itemUsecase)
	personHandler = NewPersonHandler(personUsecase)
	healthHandler = NewHealthHandler()
}

func GetCollectionHandler() *CollectionHandler {
	return collectionHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetPersonHandler() *PersonHandler {
	return personHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
